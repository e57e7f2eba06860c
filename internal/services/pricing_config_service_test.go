package services

import (
	"context"
	"errors"
	"testing"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
)

func TestPricingConfigService_SeedDefaultOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.configs.SeedDefault(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected seeding to be skipped when a config is already active")
	}

	cfgs, err := env.configs.List(ctx)
	if err != nil {
		t.Fatalf("failed to list configs: %v", err)
	}
	if len(cfgs) != 1 {
		t.Fatalf("expected 1 config, got %d", len(cfgs))
	}
	if cfgs[0].BasePriceSmall != 500 || cfgs[0].PricePerKm != 50 || cfgs[0].PricePerMinute != 10 {
		t.Errorf("unexpected default tariffs: %+v", cfgs[0])
	}
}

func TestPricingConfigService_ActivationIsExclusive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := DefaultPricingConfig
	in.Name = "Summer"
	in.PricePerKm = 70

	summer, err := env.configs.Create(ctx, in, true)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}

	active, err := env.configs.GetActive(ctx)
	if err != nil {
		t.Fatalf("failed to get active config: %v", err)
	}
	if active.ID != summer.ID {
		t.Errorf("expected %s to be active, got %s", summer.ID, active.ID)
	}

	in.Name = "Winter"
	winter, err := env.configs.Create(ctx, in, false)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	if _, err := env.configs.Activate(ctx, winter.ID); err != nil {
		t.Fatalf("failed to activate: %v", err)
	}

	cfgs, err := env.configs.List(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	activeCount := 0
	for _, cfg := range cfgs {
		if cfg.IsActive {
			activeCount++
			if cfg.ID != winter.ID {
				t.Errorf("unexpected active config %s", cfg.Name)
			}
		}
	}
	if activeCount != 1 {
		t.Errorf("expected exactly 1 active config, got %d", activeCount)
	}
}

func TestPricingConfigService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := DefaultPricingConfig
	in.Name = " "
	in.PricePerMinute = 0

	if _, err := env.configs.Create(ctx, in, false); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	if _, err := env.configs.Activate(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

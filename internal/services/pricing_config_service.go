package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

type PricingConfigInput struct {
	Name            string `json:"name"`
	BasePriceSmall  int64  `json:"base_price_small"`
	BasePriceMedium int64  `json:"base_price_medium"`
	BasePriceLarge  int64  `json:"base_price_large"`
	PricePerKm      int64  `json:"price_per_km"`
	PricePerMinute  int64  `json:"price_per_minute"`
}

// DefaultPricingConfig is seeded when no config is active.
var DefaultPricingConfig = PricingConfigInput{
	Name:            "Default configuration",
	BasePriceSmall:  500,
	BasePriceMedium: 800,
	BasePriceLarge:  1200,
	PricePerKm:      50,
	PricePerMinute:  10,
}

type PricingConfigService struct {
	store *repository.Store
	log   *slog.Logger
}

func NewPricingConfigService(store *repository.Store, log *slog.Logger) *PricingConfigService {
	return &PricingConfigService{store: store, log: log}
}

func (in PricingConfigInput) Validate() error {
	var problems []string

	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if in.BasePriceSmall <= 0 {
		problems = append(problems, "base_price_small must be positive")
	}
	if in.BasePriceMedium <= 0 {
		problems = append(problems, "base_price_medium must be positive")
	}
	if in.BasePriceLarge <= 0 {
		problems = append(problems, "base_price_large must be positive")
	}
	if in.PricePerKm <= 0 {
		problems = append(problems, "price_per_km must be positive")
	}
	if in.PricePerMinute <= 0 {
		problems = append(problems, "price_per_minute must be positive")
	}

	if len(problems) > 0 {
		return apperrors.Validation(strings.Join(problems, "; "))
	}
	return nil
}

// Create stores a config. With activate set, every other config is
// deactivated in the same transaction.
func (s *PricingConfigService) Create(ctx context.Context, in PricingConfigInput, activate bool) (*model.PricingConfig, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	cfg := &model.PricingConfig{
		Name:            strings.TrimSpace(in.Name),
		IsActive:        activate,
		BasePriceSmall:  in.BasePriceSmall,
		BasePriceMedium: in.BasePriceMedium,
		BasePriceLarge:  in.BasePriceLarge,
		PricePerKm:      in.PricePerKm,
		PricePerMinute:  in.PricePerMinute,
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if activate {
			if err := tx.PricingConfigs.DeactivateAll(ctx); err != nil {
				return err
			}
		}
		return tx.PricingConfigs.Create(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("pricing config created", "config_id", cfg.ID, "active", cfg.IsActive)
	return cfg, nil
}

func (s *PricingConfigService) Activate(ctx context.Context, id string) (*model.PricingConfig, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.PricingConfigs.FindByID(ctx, id); err != nil {
			return err
		}
		if err := tx.PricingConfigs.DeactivateAll(ctx); err != nil {
			return err
		}
		return tx.PricingConfigs.SetActive(ctx, id, true)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("pricing config activated", "config_id", id)
	return s.store.PricingConfigs.FindByID(ctx, id)
}

func (s *PricingConfigService) Deactivate(ctx context.Context, id string) (*model.PricingConfig, error) {
	if err := s.store.PricingConfigs.SetActive(ctx, id, false); err != nil {
		return nil, err
	}

	s.log.Info("pricing config deactivated", "config_id", id)
	return s.store.PricingConfigs.FindByID(ctx, id)
}

func (s *PricingConfigService) GetActive(ctx context.Context) (*model.PricingConfig, error) {
	return s.store.PricingConfigs.FindActive(ctx)
}

func (s *PricingConfigService) List(ctx context.Context) ([]model.PricingConfig, error) {
	return s.store.PricingConfigs.List(ctx)
}

// SeedDefault creates and activates DefaultPricingConfig unless a config is
// already active. It reports whether a config was created.
func (s *PricingConfigService) SeedDefault(ctx context.Context) (bool, error) {
	_, err := s.store.PricingConfigs.FindActive(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNoActivePricingConfig) {
		return false, err
	}

	if _, err := s.Create(ctx, DefaultPricingConfig, true); err != nil {
		return false, err
	}
	return true, nil
}

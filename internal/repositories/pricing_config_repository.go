package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type PricingConfigRepository struct {
	db *gorm.DB
}

func NewPricingConfigRepository(db *gorm.DB) *PricingConfigRepository {
	return &PricingConfigRepository{db: db}
}

func (r *PricingConfigRepository) Create(ctx context.Context, cfg *model.PricingConfig) error {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(cfg).Error; err != nil {
		return fmt.Errorf("insert pricing config: %w", err)
	}
	return nil
}

func (r *PricingConfigRepository) FindByID(ctx context.Context, id string) (*model.PricingConfig, error) {
	var cfg model.PricingConfig
	if err := r.db.WithContext(ctx).First(&cfg, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrPricingConfigNotFound)
	}
	return &cfg, nil
}

func (r *PricingConfigRepository) FindActive(ctx context.Context) (*model.PricingConfig, error) {
	var cfg model.PricingConfig
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&cfg).Error; err != nil {
		return nil, notFound(err, apperrors.ErrNoActivePricingConfig)
	}
	return &cfg, nil
}

func (r *PricingConfigRepository) List(ctx context.Context) ([]model.PricingConfig, error) {
	var cfgs []model.PricingConfig
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&cfgs).Error; err != nil {
		return nil, fmt.Errorf("list pricing configs: %w", err)
	}
	return cfgs, nil
}

func (r *PricingConfigRepository) DeactivateAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Model(&model.PricingConfig{}).
		Where("is_active = ?", true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return fmt.Errorf("deactivate pricing configs: %w", err)
	}
	return nil
}

func (r *PricingConfigRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.PricingConfig{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("set pricing config active: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPricingConfigNotFound
	}
	return nil
}

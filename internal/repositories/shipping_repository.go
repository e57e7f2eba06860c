package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type ShippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) *ShippingRepository {
	return &ShippingRepository{db: db}
}

// Append inserts the next leg for the shipping's task.
func (r *ShippingRepository) Append(ctx context.Context, shipping *model.Shipping) error {
	if shipping.ID == "" {
		shipping.ID = uuid.NewString()
	}

	var last int
	err := r.db.WithContext(ctx).Model(&model.Shipping{}).
		Where("task_id = ?", shipping.TaskID).
		Select("COALESCE(MAX(leg), 0)").
		Scan(&last).Error
	if err != nil {
		return fmt.Errorf("read last shipping leg: %w", err)
	}
	shipping.Leg = last + 1

	if err := r.db.WithContext(ctx).Create(shipping).Error; err != nil {
		return fmt.Errorf("insert shipping: %w", err)
	}
	return nil
}

func (r *ShippingRepository) Current(ctx context.Context, taskID string) (*model.Shipping, error) {
	var shipping model.Shipping
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("leg desc").
		First(&shipping).Error
	if err != nil {
		return nil, notFound(err, apperrors.ErrShippingNotFound)
	}
	return &shipping, nil
}

func (r *ShippingRepository) ListByTask(ctx context.Context, taskID string) ([]model.Shipping, error) {
	var legs []model.Shipping
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("leg asc").Find(&legs).Error; err != nil {
		return nil, fmt.Errorf("list shippings: %w", err)
	}
	return legs, nil
}

func (r *ShippingRepository) DeleteByTask(ctx context.Context, taskID string) error {
	if err := r.db.WithContext(ctx).Delete(&model.Shipping{}, "task_id = ?", taskID).Error; err != nil {
		return fmt.Errorf("delete shippings: %w", err)
	}
	return nil
}

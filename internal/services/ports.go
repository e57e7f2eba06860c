package services

import (
	"context"

	"task-marketplace.com/task-marketplace/internal/constants"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type AddressStore interface {
	Save(ctx context.Context, label string, lat, lng float64) (*model.Address, error)
	FindByID(ctx context.Context, id string) (*model.Address, error)
}

type CategoryStore interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

type RelayPointStore interface {
	FindByID(ctx context.Context, id string) (*model.RelayPoint, error)
}

type ActivePricingConfigSource interface {
	FindActive(ctx context.Context) (*model.PricingConfig, error)
}

// NotificationDispatcher is fire-and-forget: it never reports delivery errors.
type NotificationDispatcher interface {
	Notify(userID string, kind constants.NotificationKind, payload map[string]string) bool
}

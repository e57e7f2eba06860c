package services

import (
	"context"
	"log/slog"
	"strings"

	"task-marketplace.com/task-marketplace/internal/constants"
	dto "task-marketplace.com/task-marketplace/internal/data_models"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

// ReferenceService manages the catalogue data tasks point at: service
// categories with their hourly rate, and relay points.
type ReferenceService struct {
	store *repository.Store
	log   *slog.Logger
}

func NewReferenceService(store *repository.Store, log *slog.Logger) *ReferenceService {
	return &ReferenceService{store: store, log: log}
}

func (s *ReferenceService) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if in.AmountInCents != nil && *in.AmountInCents <= 0 {
		return nil, apperrors.Validation("amount_in_cents must be positive")
	}

	category := &model.Category{
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		AmountInCents: in.AmountInCents,
	}
	if err := s.store.Categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info("category created", "category_id", category.ID, "name", name)
	return category, nil
}

func (s *ReferenceService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.store.Categories.List(ctx)
}

func (s *ReferenceService) CreateRelayPoint(ctx context.Context, in dto.CreateRelayPointRequest, userID string) (*model.RelayPoint, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if in.Address == nil {
		return nil, apperrors.Validation("address is required")
	}
	if err := in.Address.Validate("address"); err != nil {
		return nil, err
	}

	relay := &model.RelayPoint{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		address, err := tx.Addresses.Save(ctx, in.Address.Label, in.Address.Lat, in.Address.Lng)
		if err != nil {
			return err
		}
		relay.AddressID = address.ID
		relay.Address = address
		return tx.RelayPoints.Create(ctx, relay)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("relay point created", "relay_point_id", relay.ID, "name", name)
	return relay, nil
}

func (s *ReferenceService) ListRelayPoints(ctx context.Context) ([]model.RelayPoint, error) {
	return s.store.RelayPoints.List(ctx)
}

func (s *ReferenceService) PackageCategories() []constants.PackageCategoryInfo {
	return constants.PackageCategories
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// Save appends a new address; addresses are never updated in place.
func (r *AddressRepository) Save(ctx context.Context, label string, lat, lng float64) (*model.Address, error) {
	address := &model.Address{
		ID:    uuid.NewString(),
		Label: label,
		Lat:   lat,
		Lng:   lng,
	}
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	return address, nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*model.Address, error) {
	var address model.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrAddressNotFound)
	}
	return &address, nil
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Validation("category name already exists")
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

type RelayPointRepository struct {
	db *gorm.DB
}

func NewRelayPointRepository(db *gorm.DB) *RelayPointRepository {
	return &RelayPointRepository{db: db}
}

func (r *RelayPointRepository) Create(ctx context.Context, relay *model.RelayPoint) error {
	if relay.ID == "" {
		relay.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit("Address").Create(relay).Error; err != nil {
		return fmt.Errorf("insert relay point: %w", err)
	}
	return nil
}

// FindByID returns the relay point with its address, or
// ErrDestinationMustBeRelayPoint when id is not a relay point.
func (r *RelayPointRepository) FindByID(ctx context.Context, id string) (*model.RelayPoint, error) {
	var relay model.RelayPoint
	if err := r.db.WithContext(ctx).Preload("Address").First(&relay, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrDestinationMustBeRelayPoint)
	}
	return &relay, nil
}

func (r *RelayPointRepository) List(ctx context.Context) ([]model.RelayPoint, error) {
	var relays []model.RelayPoint
	if err := r.db.WithContext(ctx).Preload("Address").Order("name asc").Find(&relays).Error; err != nil {
		return nil, fmt.Errorf("list relay points: %w", err)
	}
	return relays, nil
}

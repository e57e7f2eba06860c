package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store struct {
	db *gorm.DB

	Tasks          *TaskRepository
	Applications   *ApplicationRepository
	Shippings      *ShippingRepository
	Messages       *MessageRepository
	PricingConfigs *PricingConfigRepository
	Addresses      *AddressRepository
	Categories     *CategoryRepository
	RelayPoints    *RelayPointRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Tasks:          NewTaskRepository(db),
		Applications:   NewApplicationRepository(db),
		Shippings:      NewShippingRepository(db),
		Messages:       NewMessageRepository(db),
		PricingConfigs: NewPricingConfigRepository(db),
		Addresses:      NewAddressRepository(db),
		Categories:     NewCategoryRepository(db),
		RelayPoints:    NewRelayPointRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database transaction.
// Any error returned by fn rolls the whole unit back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFound(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

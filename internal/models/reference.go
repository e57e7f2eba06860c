package model

import "time"

type Address struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Label     string    `gorm:"not null" json:"label"`
	Lat       float64   `gorm:"not null" json:"lat"`
	Lng       float64   `gorm:"not null" json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"not null;uniqueIndex" json:"name"`
	Description   string    `json:"description"`
	AmountInCents *int64    `json:"amount_in_cents,omitempty"` // hourly rate
	CreatedAt     time.Time `json:"created_at"`
}

type RelayPoint struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:64;not null" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	AddressID   string    `gorm:"size:36;not null" json:"address_id"`
	CreatedAt   time.Time `json:"created_at"`

	Address *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

// All lists every model for auto-migration.
func All() []any {
	return []any{
		&Address{},
		&Category{},
		&RelayPoint{},
		&PricingConfig{},
		&Task{},
		&Shipping{},
		&TaskApplication{},
		&TaskMessage{},
	}
}

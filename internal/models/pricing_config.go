package model

import "time"

// PricingConfig holds shipping tariffs in cents. At most one row is active.
type PricingConfig struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	IsActive        bool      `gorm:"not null;default:false;index:idx_pricing_configs_single_active,unique,where:is_active = true" json:"is_active"`
	BasePriceSmall  int64     `gorm:"not null" json:"base_price_small"`
	BasePriceMedium int64     `gorm:"not null" json:"base_price_medium"`
	BasePriceLarge  int64     `gorm:"not null" json:"base_price_large"`
	PricePerKm      int64     `gorm:"not null" json:"price_per_km"`
	PricePerMinute  int64     `gorm:"not null" json:"price_per_minute"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

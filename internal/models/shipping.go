package model

import (
	"time"

	"gorm.io/datatypes"

	"task-marketplace.com/task-marketplace/internal/constants"
)

// Shipping is one leg of a shipping task. Recording an intermediary step
// inserts a new leg; the highest Leg is the current one.
type Shipping struct {
	ID                         string                    `gorm:"primaryKey;size:36" json:"id"`
	TaskID                     string                    `gorm:"size:36;not null;uniqueIndex:idx_shipping_task_leg" json:"task_id"`
	Leg                        int                       `gorm:"not null;default:1;uniqueIndex:idx_shipping_task_leg" json:"leg"`
	PackageCategory            constants.PackageCategory `gorm:"type:varchar(10);not null" json:"package_category"`
	PickupAddressID            string                    `gorm:"size:36;not null" json:"pickup_address_id"`
	DeliveryAddressID          string                    `gorm:"size:36;not null" json:"delivery_address_id"`
	RelayPointID               string                    `gorm:"size:36;not null" json:"relay_point_id"`
	PackageDetails             datatypes.JSON            `json:"package_details,omitempty"`
	EstimatedDistanceInMeters  float64                   `json:"estimated_distance_in_meters"`
	EstimatedDurationInMinutes float64                   `json:"estimated_duration_in_minutes"`
	CalculatedPriceInCents     int64                     `json:"calculated_price_in_cents"`
	CreatedAt                  time.Time                 `json:"created_at"`
	UpdatedAt                  time.Time                 `json:"updated_at"`
}

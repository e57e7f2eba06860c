package model

import (
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
)

type Task struct {
	ID                     string               `gorm:"primaryKey;size:36" json:"id"`
	UserID                 string               `gorm:"size:64;not null;index" json:"user_id"`
	Type                   constants.TaskType   `gorm:"type:varchar(20);not null" json:"type"`
	Status                 constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Title                  string               `gorm:"not null" json:"title"`
	Description            string               `gorm:"not null" json:"description"`
	AddressID              string               `gorm:"size:36;not null" json:"address_id"`
	CategoryID             *string              `gorm:"size:36" json:"category_id,omitempty"`
	EstimatedDuration      *int                 `json:"estimated_duration,omitempty"` // minutes, service tasks only
	FileID                 *string              `gorm:"size:64" json:"file_id,omitempty"`
	CalculatedPriceInCents *int64               `json:"calculated_price_in_cents,omitempty"`
	Version                uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`

	Address  *Address  `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Shipping *Shipping `gorm:"-" json:"shipping,omitempty"`
}

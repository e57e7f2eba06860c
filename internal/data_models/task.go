package dto

import (
	"encoding/json"
	"strings"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/geo"
)

type AddressInput struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

func (a AddressInput) Point() geo.Point {
	return geo.Point{Lat: a.Lat, Lon: a.Lng}
}

func (a AddressInput) Validate(field string) error {
	if strings.TrimSpace(a.Label) == "" {
		return apperrors.Validation(field + ".label is required")
	}
	if err := a.Point().Validate(); err != nil {
		return apperrors.Validation(field + ": " + err.Error())
	}
	return nil
}

// TaskDetails is the type-specific half of a task creation. Exactly one
// implementation exists per task type.
type TaskDetails interface {
	TaskType() constants.TaskType
	Validate() error
}

type ServiceDetails struct {
	CategoryID        string
	EstimatedDuration int // minutes
}

func (ServiceDetails) TaskType() constants.TaskType { return constants.TaskTypeService }

func (d ServiceDetails) Validate() error {
	if strings.TrimSpace(d.CategoryID) == "" {
		return apperrors.Validation("category_id is required for service tasks")
	}
	if d.EstimatedDuration <= 0 {
		return apperrors.Validation("estimated_duration is required for service tasks")
	}
	return nil
}

type ShippingDetails struct {
	PackageCategory constants.PackageCategory
	PickupAddress   *AddressInput
	RelayPointID    string
	PackageDetails  json.RawMessage
}

func (ShippingDetails) TaskType() constants.TaskType { return constants.TaskTypeShipping }

func (d ShippingDetails) Validate() error {
	if !d.PackageCategory.Valid() {
		return apperrors.Validation("package_category must be one of SMALL, MEDIUM, LARGE")
	}
	if d.PickupAddress == nil {
		return apperrors.Validation("pickup_address is required for shipping tasks")
	}
	if err := d.PickupAddress.Validate("pickup_address"); err != nil {
		return err
	}
	if strings.TrimSpace(d.RelayPointID) == "" {
		return apperrors.Validation("relay_point_id is required for shipping tasks")
	}
	if len(d.PackageDetails) > 0 && !json.Valid(d.PackageDetails) {
		return apperrors.Validation("package_details must be valid JSON")
	}
	return nil
}

type CreateTaskInput struct {
	Title       string
	Description string
	Address     *AddressInput
	FileID      *string
	Details     TaskDetails
}

func (in CreateTaskInput) Validate() error {
	if in.Details == nil {
		return apperrors.Validation("task type is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.Validation("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperrors.Validation("description is required")
	}
	if in.Address == nil {
		return apperrors.Validation("address is required")
	}
	if err := in.Address.Validate("address"); err != nil {
		return err
	}
	return in.Details.Validate()
}

// CreateTaskRequest is the flat wire shape; ToInput narrows it to the
// variant selected by Type.
type CreateTaskRequest struct {
	Type              constants.TaskType        `json:"type"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	Address           *AddressInput             `json:"address"`
	FileID            *string                   `json:"file_id,omitempty"`
	CategoryID        string                    `json:"category_id,omitempty"`
	EstimatedDuration int                       `json:"estimated_duration,omitempty"`
	PackageCategory   constants.PackageCategory `json:"package_category,omitempty"`
	PickupAddress     *AddressInput             `json:"pickup_address,omitempty"`
	RelayPointID      string                    `json:"relay_point_id,omitempty"`
	PackageDetails    json.RawMessage           `json:"package_details,omitempty"`
}

func (r CreateTaskRequest) ToInput() (CreateTaskInput, error) {
	in := CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Address:     r.Address,
		FileID:      r.FileID,
	}

	switch r.Type {
	case constants.TaskTypeService:
		in.Details = ServiceDetails{
			CategoryID:        r.CategoryID,
			EstimatedDuration: r.EstimatedDuration,
		}
	case constants.TaskTypeShipping:
		in.Details = ShippingDetails{
			PackageCategory: r.PackageCategory,
			PickupAddress:   r.PickupAddress,
			RelayPointID:    r.RelayPointID,
			PackageDetails:  r.PackageDetails,
		}
	case "":
		return in, apperrors.Validation("type is required")
	default:
		return in, apperrors.Validation("unknown task type: " + string(r.Type))
	}

	return in, nil
}

type UpdateTaskInput struct {
	Title             *string       `json:"title,omitempty"`
	Description       *string       `json:"description,omitempty"`
	EstimatedDuration *int          `json:"estimated_duration,omitempty"`
	CategoryID        *string       `json:"category_id,omitempty"`
	Address           *AddressInput `json:"address,omitempty"`
	FileID            *string       `json:"file_id,omitempty"`
}

func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.EstimatedDuration == nil &&
		in.CategoryID == nil && in.Address == nil && in.FileID == nil
}

type TaskFilters struct {
	Type        *constants.TaskType
	Status      *constants.TaskStatus
	CategoryID  *string
	DurationMin *int
	DurationMax *int
	Lat         *float64
	Lng         *float64
	RadiusKm    *float64
}

package dto

import (
	"task-marketplace.com/task-marketplace/internal/constants"
)

type ApplyToTaskRequest struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type ValidateCompletionRequest struct {
	Code string `json:"code"`
}

type SendMessageRequest struct {
	ReceiverID  string                `json:"receiver_id"`
	Content     string                `json:"content"`
	MessageType constants.MessageType `json:"message_type,omitempty"`
}

type ShippingEstimateRequest struct {
	Lat             float64                   `query:"lat"`
	Lng             float64                   `query:"lng"`
	RelayPointID    string                    `query:"relay_point_id"`
	PackageCategory constants.PackageCategory `query:"package_category"`
}

type CreateCategoryRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	AmountInCents *int64 `json:"amount_in_cents"`
}

type CreateRelayPointRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Address     *AddressInput `json:"address"`
}

package errors

import "net/http"

var ErrNotFound = &Exception{
	Code:       "NOT_FOUND",
	Message:    "resource not found",
	StatusCode: http.StatusNotFound,
}

var (
	ErrTaskNotFound          = ErrNotFound.WithMessage("task not found")
	ErrApplicationNotFound   = ErrNotFound.WithMessage("application not found")
	ErrCategoryNotFound      = ErrNotFound.WithMessage("category not found")
	ErrAddressNotFound       = ErrNotFound.WithMessage("address not found")
	ErrShippingNotFound      = ErrNotFound.WithMessage("shipping not found for task")
	ErrPricingConfigNotFound = ErrNotFound.WithMessage("pricing config not found")
)

package errors

import "net/http"

var ErrValidation = &Exception{
	Code:       "VALIDATION_ERROR",
	Message:    "invalid input",
	StatusCode: http.StatusBadRequest,
}

func Validation(message string) *Exception {
	return ErrValidation.WithMessage(message)
}

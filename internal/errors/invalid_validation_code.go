package errors

import "net/http"

var ErrInvalidValidationCode = &Exception{
	Code:       "INVALID_VALIDATION_CODE",
	Message:    "invalid validation code",
	StatusCode: http.StatusUnprocessableEntity,
}

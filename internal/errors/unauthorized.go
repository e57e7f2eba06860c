package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Code:       "UNAUTHORIZED",
	Message:    "caller is not allowed to perform this action",
	StatusCode: http.StatusForbidden,
}

func Unauthorized(message string) *Exception {
	return ErrUnauthorized.WithMessage(message)
}

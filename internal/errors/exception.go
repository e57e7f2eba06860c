package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// Is matches on Code so that detailed variants still match their sentinel.
func (e *Exception) Is(target error) bool {
	var other *Exception
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *Exception) WithMessage(message string) *Exception {
	return &Exception{
		Code:       e.Code,
		Message:    message,
		StatusCode: e.StatusCode,
	}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func Code(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL"
}

// Message returns the client-facing message. Errors that are not an
// Exception are hidden.
func Message(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

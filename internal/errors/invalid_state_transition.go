package errors

import "net/http"

var ErrInvalidStateTransition = &Exception{
	Code:       "INVALID_STATE_TRANSITION",
	Message:    "invalid state transition",
	StatusCode: http.StatusConflict,
}

func InvalidStateTransition(message string) *Exception {
	return ErrInvalidStateTransition.WithMessage(message)
}

package errors

import "net/http"

var ErrDuplicateApplication = &Exception{
	Code:       "DUPLICATE_APPLICATION",
	Message:    "you have already applied to this task",
	StatusCode: http.StatusConflict,
}

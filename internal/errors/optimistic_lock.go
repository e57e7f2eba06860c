package errors

import "net/http"

var ErrOptimisticLock = &Exception{
	Code:       "OPTIMISTIC_LOCK",
	Message:    "optimistic locking conflict",
	StatusCode: http.StatusConflict,
}

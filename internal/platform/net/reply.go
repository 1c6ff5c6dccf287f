package net

import (
	"net/http"

	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
)

// Wire is the error envelope written by transports outside the handler layer
// (panic recovery, timeouts)
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error builds an error envelope; a nil error yields a bare 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{
			StatusCode: http.StatusOK,
			Status:     http.StatusText(http.StatusOK),
			RequestID:  reqID,
		}
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}

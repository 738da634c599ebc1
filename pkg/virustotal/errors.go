package virustotal

import (
	"errors"
	"fmt"
)

// StatusError records an unsuccessful HTTP response. APICode and Message
// come from the API's {"error": {"code", "message"}} body when present.
type StatusError struct {
	StatusCode int
	APICode    string // e.g. "NotFoundError", "QuotaExceededError"
	Message    string
}

func (e *StatusError) Error() string {
	if e.APICode != "" {
		return fmt.Sprintf("status code: %d (%s: %s)", e.StatusCode, e.APICode, e.Message)
	}
	return fmt.Sprintf("status code: %d", e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from an unsuccessful response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

type apiErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

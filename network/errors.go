package network

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyBody is returned when a successful response carries no body.
var ErrEmptyBody = errors.New("empty response body")

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.Code, http.StatusText(e.Code), e.URL)
}

// Retryable reports whether another mirror may succeed where this one failed.
// Only a plain 500 qualifies.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusInternalServerError
}

// IsRetryable reports whether err wraps a retryable StatusError.
func IsRetryable(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Retryable()
}

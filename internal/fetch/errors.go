// internal/fetch/errors.go
package fetch

import (
	"errors"
	"fmt"
)

// Sentinel fetch failures.
var (
	ErrBadStatus = errors.New("non-success HTTP status")
	ErrTimeout   = errors.New("request timeout")
)

// Error is a failed page retrieval: network failure, non-success status
// or navigation timeout. Fatal for single-page operations; the
// multi-page aggregator treats it as skip-and-continue.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode reports the HTTP status, 0 when the failure happened below
// the HTTP layer. Used by retry classification.
func (e *Error) StatusCode() int {
	return e.Status
}

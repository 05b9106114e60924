package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a Resolver when the source record has no destination counterpart.
	ErrNotFound = errors.New("record not found in destination")

	// ErrFetch matches every *FetchError.
	ErrFetch = errors.New("change feed fetch failed")

	// ErrApply matches every *ApplyError.
	ErrApply = errors.New("destination apply failed")
)

// FetchError is a failed change feed page request. It aborts the current date only.
type FetchError struct {
	Date       string
	Page       int
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch changes for %s page %d: status %d: %v", e.Date, e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch changes for %s page %d: %v", e.Date, e.Page, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// ApplyError is a failed destination mutation for a single event.
type ApplyError struct {
	Op       string
	SourceID string
	Err      error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.SourceID, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ApplyError) Is(target error) bool {
	return target == ErrApply
}

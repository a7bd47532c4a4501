package content

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPool is returned when the curated pool has no active entries.
	ErrEmptyPool = errors.New("content: curated pool is empty")
	// ErrCapacityExceeded is returned when an owner already holds CustomLimit items.
	ErrCapacityExceeded = errors.New("content: custom pool capacity exceeded")
	// ErrNotFound covers both a missing id and an id owned by another guild.
	ErrNotFound = errors.New("content: not found")
)

// ValidationError reports a malformed argument rejected before any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps a failure from the persistence backend.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("content: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package domain

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned for operations on an id that does not exist
	ErrNotFound = errors.New("seasonal image not found")

	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation failed")

	// ErrStoreUnavailable matches every *StoreError
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// ValidationError blocks a write before it reaches the store
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreError wraps a failure of the backing store. It is never retried.
type StoreError struct {
	Err error
}

// NewStoreError wraps err with msg and marks it as a store failure
func NewStoreError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: errors.Wrap(err, msg)}
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

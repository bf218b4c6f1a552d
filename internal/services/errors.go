package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrItemNotFound = errors.New("item not found")
	ErrStorage      = errors.New("storage failure")
)

// ValidationError carries a message that is safe to show the user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StorageError wraps a database failure. Message is the user-facing summary;
// the cause stays available for logging through Unwrap.
type StorageError struct {
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Cause} }

func storageErr(msg string, cause error) error {
	return &StorageError{Message: msg, Cause: cause}
}

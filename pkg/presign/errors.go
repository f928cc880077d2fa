package presign

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrInvalidRequest indicates a request was rejected before any storage
	// call was made. Validation failures wrap this sentinel.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrObjectNotFound indicates the target object does not exist
	ErrObjectNotFound = errors.New("object not found")
)

// ValidationError reports missing or disallowed request input. The reason is
// the user-visible message; it never echoes anything but the offending value.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// StorageError represents a failed signer call for any reason other than
// "not found". It is never retried here; presigning is idempotent, so retry
// policy belongs to the caller.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

package intakekit

import (
	"errors"
	"fmt"
)

// Common intake errors
var (
	ErrTooLarge        = errors.New("file too large")
	ErrWrongType       = errors.New("file type not accepted")
	ErrNoContent       = errors.New("file has no content source")
	ErrPreviewReleased = errors.New("preview already released")
	ErrPreviewTooLarge = errors.New("file too large to preview")
	ErrSessionClosed   = errors.New("intake session closed")
)

// IntakeError records an error and the operation and file name that caused it
type IntakeError struct {
	Op   string
	Name string
	Err  error
}

// Error implements the error interface
func (e *IntakeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying error
func (e *IntakeError) Unwrap() error {
	return e.Err
}

// IsTooLarge reports whether an error indicates that a file exceeded the size ceiling
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrTooLarge)
}

// IsWrongType reports whether an error indicates that a file type was not accepted
func IsWrongType(err error) bool {
	return errors.Is(err, ErrWrongType)
}

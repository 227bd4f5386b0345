package store

import (
	"errors"
	"fmt"
)

// ErrorType classifies store errors.
type ErrorType string

const (
	ErrNotFound     ErrorType = "not_found"
	ErrUnavailable  ErrorType = "unavailable"
	ErrInvalidInput ErrorType = "invalid_input"
)

// Error represents a store-related error
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Type, so errors.Is(err, &Error{Type: ErrNotFound})
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type
}

// IsType reports whether err wraps a store *Error of type t.
func IsType(err error, t ErrorType) bool {
	return errors.Is(err, &Error{Type: t})
}

package errors

import (
	"errors"
	"fmt"
)

// Common error types shared by the session, store and client packages
var (
	// Session errors
	ErrNoSession        = errors.New("no session manager in context")
	ErrEmptyToken       = errors.New("empty token")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Storage errors
	ErrStorage = errors.New("session storage failure")

	// Configuration errors
	ErrUnknownStore = errors.New("unknown session store")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// StorageErr wraps a store failure so callers can match both ErrStorage and
// the backend's own error
func StorageErr(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w: %w", append(args, ErrStorage, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

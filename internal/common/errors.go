// Package common defines shared constants and the error taxonomy used across
// the gateway, local store, repositories and the lifecycle controller.
// Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Remote failures.
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrRateLimited        = errors.New("rate limited")

	// Credential failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakCredentials    = errors.New("weak credentials")

	// ErrEmailInUse also matches ErrAlreadyExists.
	ErrEmailInUse = fmt.Errorf("email in use: %w", ErrAlreadyExists)

	// Local store failures.
	ErrPersistence = errors.New("persistence failure")
)

// UnknownError carries a failure that could not be classified.
type UnknownError struct {
	Cause error
}

func (e *UnknownError) Error() string {
	if e.Cause == nil {
		return "unknown error"
	}
	return "unknown error: " + e.Cause.Error()
}

func (e *UnknownError) Unwrap() error { return e.Cause }

// Unknown wraps err as an UnknownError. A nil err stays nil.
func Unknown(err error) error {
	if err == nil {
		return nil
	}
	return &UnknownError{Cause: err}
}

// Persistence marks err as a local store failure. The result matches
// ErrPersistence and still unwraps to err. Errors already marked are
// returned unchanged; a nil err stays nil.
func Persistence(err error) error {
	if err == nil || errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

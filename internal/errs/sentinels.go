// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested record does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials indicates an authentication attempt with no
	// matching user. It is an expected outcome, not a storage failure.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmptyProfile indicates a profile missing required identity fields
	// (elder name or birth date).
	ErrEmptyProfile = errors.New("profile missing required fields")
)

// Package common defines shared constants and sentinel errors used across
// the storage, service and transport layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors. Absent rows are reported with ErrorNotFound,
	// which is a normal outcome rather than a fault.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorUnauthenticated = errors.New("unauthenticated")

	// Validation errors for caller-supplied input.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed session token envelope).
	ErrInvalidToken = errors.New("invalid token")
)

// Package common defines shared constants and sentinel errors used across
// the user and token stores. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateUser  = errors.New("user already exists")
	ErrDuplicateToken = errors.New("token already exists")

	// ErrIntegrity reports more than one row for a supposedly unique key.
	// It indicates external corruption and must propagate to the caller.
	ErrIntegrity = errors.New("integrity violation")

	// Malformed requests.
	ErrMissingField      = errors.New("required field missing")
	ErrMissingIdentifier = errors.New("no identifier given")
	ErrNoChanges         = errors.New("no changes to save")
)

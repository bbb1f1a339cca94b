// Package common defines shared constants and sentinel errors used across
// the tracker's layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorAlreadyExists    = errors.New("already exists")
	ErrorStoreUnavailable = errors.New("store unavailable")

	// Service-level errors.
	ErrorInternal            = errors.New("internal error")
	ErrorUnauthorized        = errors.New("unauthorized")
	ErrorValidation          = errors.New("validation error")
	ErrorUnsupportedSource   = errors.New("unsupported source")
	ErrorProviderUnavailable = errors.New("provider unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

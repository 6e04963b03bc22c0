// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Application error taxonomy. Every failure that reaches the web layer wraps
// one of these; handlers map them onto HTTP statuses.
var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidID marks an entry id that fails the active backend's
	// format check.
	ErrInvalidID = errors.New("invalid id")

	// ErrUnsupported marks an operation the active backend does not
	// provide, such as notes under SQLite.
	ErrUnsupported = errors.New("operation not supported by this backend")

	// ErrExternalService marks a collaborator failure: timeout, non-2xx
	// response, or a payload we cannot parse.
	ErrExternalService = errors.New("external service failure")

	// ErrImageDecode marks an unreadable image payload.
	ErrImageDecode = errors.New("unreadable image")

	// ErrMissingConfig marks configuration required for an operation but
	// absent at startup.
	ErrMissingConfig = errors.New("missing configuration")
)

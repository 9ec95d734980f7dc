package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without
// leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrInvalidCredentials covers login, password and one-time-code
	// mismatches. These are client errors (400), not token failures (401):
	// ErrUnauthorized stays reserved for missing/invalid bearer tokens.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

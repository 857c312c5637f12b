// Package common defines shared constants and sentinel errors used across
// the patentcert packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Session gate errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorRoleMismatch = errors.New("role mismatch")

	// Validation errors on admin edits.
	ErrorValidation = errors.New("validation error")

	// Store errors. A corrupted document is unrecoverable: the caller must
	// halt rather than silently replace persisted data with the seed.
	ErrorStoreCorrupt = errors.New("stored document corrupt")

	// Ledger errors.
	ErrorIDCollision = errors.New("certificate id collision")

	// Presentation/export errors. The ledger is untouched when this is seen.
	ErrorExportFailed = errors.New("export failed")
)

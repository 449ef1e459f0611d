package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a statement matched zero rows. For
	// owner-guarded mutations this deliberately covers both "resource
	// absent" and "resource exists but is owned by someone else"; the
	// two causes are not distinguishable from the affected-row count,
	// and keeping them merged avoids leaking resource existence.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a statement violated a unique
	// constraint, such as liking the same recipe twice.
	ErrConflict = errors.New("resource already exists")
)

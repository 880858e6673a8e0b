package catalogdb

import "errors"

// Sentinel errors for the catalog repository layer. Service code maps them
// onto user-facing error kinds.
var (
	// ErrNotFound indicates the requested event, competition or edition does
	// not exist.
	ErrNotFound = errors.New("catalog record not found")

	// ErrDuplicate indicates an insert hit a unique constraint.
	ErrDuplicate = errors.New("catalog record already exists")
)

package participationdb

import "errors"

var (
	// ErrNotFound indicates no ledger row exists for the user and target.
	ErrNotFound = errors.New("participation record not found")

	// ErrDuplicate indicates a write lost a race on the (user, target) key.
	ErrDuplicate = errors.New("participation record already exists")
)

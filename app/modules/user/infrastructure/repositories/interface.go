package userdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository is the read side of the users table.
type Repository interface {
	// GetUsersByIDs returns the users that exist among ids, in no particular
	// order. Unknown ids are skipped.
	GetUsersByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]*User, error)
}

package userdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements Repository using Bun ORM.
type Impl struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// GetUsersByIDs loads the users among ids; unknown ids are skipped.
func (r *Impl) GetUsersByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if db == nil {
		db = r.db
	}
	var users []*User
	err := db.NewSelect().
		Model(&users).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("userdb.GetUsersByIDs: %w", err)
	}
	return users, nil
}

package userdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for tests in other
// packages.
type FakeRepository struct {
	GetUsersByIDsFn func(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]*User, error)
}

func (f *FakeRepository) GetUsersByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]*User, error) {
	if f.GetUsersByIDsFn != nil {
		return f.GetUsersByIDsFn(ctx, db, ids)
	}
	return nil, nil
}

var _ Repository = (*FakeRepository)(nil)

package catalogdb

import (
	"context"

	"github.com/google/uuid"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for tests in other
// packages. Unset functions report ErrNotFound for lookups and succeed for
// writes.
type FakeRepository struct {
	GetEventByIDFn              func(ctx context.Context, db bun.IDB, id uuid.UUID) (*Event, error)
	GetCompetitionByIDFn        func(ctx context.Context, db bun.IDB, id uuid.UUID) (*Competition, error)
	GetEditionByIDFn            func(ctx context.Context, db bun.IDB, id uuid.UUID) (*Edition, error)
	GetEditionBySlugFn          func(ctx context.Context, db bun.IDB, slug string) (*Edition, error)
	GetEditionByYearFn          func(ctx context.Context, db bun.IDB, competitionID uuid.UUID, year int) (*Edition, error)
	ListEditionsByCompetitionFn func(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]*Edition, error)
	GetFlatEditionFn            func(ctx context.Context, db bun.IDB, id uuid.UUID) (map[string]any, error)
	ListEditionYearsFn          func(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]int, error)
	CreateEditionsFn            func(ctx context.Context, db bun.IDB, editions []*Edition) error
	UpdateEditionStatusFn       func(ctx context.Context, db bun.IDB, id uuid.UUID, status catalogdomain.Status, reg catalogdomain.RegistrationStatus) error
}

func (f *FakeRepository) GetEventByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Event, error) {
	if f.GetEventByIDFn != nil {
		return f.GetEventByIDFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetCompetitionByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Competition, error) {
	if f.GetCompetitionByIDFn != nil {
		return f.GetCompetitionByIDFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetEditionByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Edition, error) {
	if f.GetEditionByIDFn != nil {
		return f.GetEditionByIDFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetEditionBySlug(ctx context.Context, db bun.IDB, slug string) (*Edition, error) {
	if f.GetEditionBySlugFn != nil {
		return f.GetEditionBySlugFn(ctx, db, slug)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetEditionByYear(ctx context.Context, db bun.IDB, competitionID uuid.UUID, year int) (*Edition, error) {
	if f.GetEditionByYearFn != nil {
		return f.GetEditionByYearFn(ctx, db, competitionID, year)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListEditionsByCompetition(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]*Edition, error) {
	if f.ListEditionsByCompetitionFn != nil {
		return f.ListEditionsByCompetitionFn(ctx, db, competitionID)
	}
	return nil, nil
}

func (f *FakeRepository) GetFlatEdition(ctx context.Context, db bun.IDB, id uuid.UUID) (map[string]any, error) {
	if f.GetFlatEditionFn != nil {
		return f.GetFlatEditionFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListEditionYears(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]int, error) {
	if f.ListEditionYearsFn != nil {
		return f.ListEditionYearsFn(ctx, db, competitionID)
	}
	return nil, nil
}

func (f *FakeRepository) CreateEditions(ctx context.Context, db bun.IDB, editions []*Edition) error {
	if f.CreateEditionsFn != nil {
		return f.CreateEditionsFn(ctx, db, editions)
	}
	return nil
}

func (f *FakeRepository) UpdateEditionStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status catalogdomain.Status, reg catalogdomain.RegistrationStatus) error {
	if f.UpdateEditionStatusFn != nil {
		return f.UpdateEditionStatusFn(ctx, db, id, status, reg)
	}
	return nil
}

var _ Repository = (*FakeRepository)(nil)

package catalogservice

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Catalog Repo
// ------------------------

type FakeCatalogRepo struct {
	trace []string

	GetEventByIDFunc              func(ctx context.Context, db bun.IDB, id uuid.UUID) (*catalogdb.Event, error)
	GetCompetitionByIDFunc        func(ctx context.Context, db bun.IDB, id uuid.UUID) (*catalogdb.Competition, error)
	GetEditionByIDFunc            func(ctx context.Context, db bun.IDB, id uuid.UUID) (*catalogdb.Edition, error)
	GetEditionBySlugFunc          func(ctx context.Context, db bun.IDB, slug string) (*catalogdb.Edition, error)
	GetEditionByYearFunc          func(ctx context.Context, db bun.IDB, competitionID uuid.UUID, year int) (*catalogdb.Edition, error)
	ListEditionsByCompetitionFunc func(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]*catalogdb.Edition, error)
	GetFlatEditionFunc            func(ctx context.Context, db bun.IDB, id uuid.UUID) (map[string]any, error)
	ListEditionYearsFunc          func(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]int, error)
	CreateEditionsFunc            func(ctx context.Context, db bun.IDB, editions []*catalogdb.Edition) error
	UpdateEditionStatusFunc       func(ctx context.Context, db bun.IDB, id uuid.UUID, status catalogdomain.Status, reg catalogdomain.RegistrationStatus) error
}

func NewFakeCatalogRepo() *FakeCatalogRepo {
	return &FakeCatalogRepo{
		trace: []string{},
	}
}

func (f *FakeCatalogRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeCatalogRepo) GetEventByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*catalogdb.Event, error) {
	f.record("GetEventByID")
	if f.GetEventByIDFunc != nil {
		return f.GetEventByIDFunc(ctx, db, id)
	}
	return nil, catalogdb.ErrNotFound
}

func (f *FakeCatalogRepo) GetCompetitionByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*catalogdb.Competition, error) {
	f.record("GetCompetitionByID")
	if f.GetCompetitionByIDFunc != nil {
		return f.GetCompetitionByIDFunc(ctx, db, id)
	}
	return nil, catalogdb.ErrNotFound
}

func (f *FakeCatalogRepo) GetEditionByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*catalogdb.Edition, error) {
	f.record("GetEditionByID")
	if f.GetEditionByIDFunc != nil {
		return f.GetEditionByIDFunc(ctx, db, id)
	}
	return nil, catalogdb.ErrNotFound
}

func (f *FakeCatalogRepo) GetEditionBySlug(ctx context.Context, db bun.IDB, slug string) (*catalogdb.Edition, error) {
	f.record("GetEditionBySlug")
	if f.GetEditionBySlugFunc != nil {
		return f.GetEditionBySlugFunc(ctx, db, slug)
	}
	return nil, catalogdb.ErrNotFound
}

func (f *FakeCatalogRepo) GetEditionByYear(ctx context.Context, db bun.IDB, competitionID uuid.UUID, year int) (*catalogdb.Edition, error) {
	f.record("GetEditionByYear")
	if f.GetEditionByYearFunc != nil {
		return f.GetEditionByYearFunc(ctx, db, competitionID, year)
	}
	return nil, catalogdb.ErrNotFound
}

func (f *FakeCatalogRepo) ListEditionsByCompetition(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]*catalogdb.Edition, error) {
	f.record("ListEditionsByCompetition")
	if f.ListEditionsByCompetitionFunc != nil {
		return f.ListEditionsByCompetitionFunc(ctx, db, competitionID)
	}
	return nil, nil
}

func (f *FakeCatalogRepo) GetFlatEdition(ctx context.Context, db bun.IDB, id uuid.UUID) (map[string]any, error) {
	f.record("GetFlatEdition")
	if f.GetFlatEditionFunc != nil {
		return f.GetFlatEditionFunc(ctx, db, id)
	}
	return nil, catalogdb.ErrNotFound
}

func (f *FakeCatalogRepo) ListEditionYears(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]int, error) {
	f.record("ListEditionYears")
	if f.ListEditionYearsFunc != nil {
		return f.ListEditionYearsFunc(ctx, db, competitionID)
	}
	return nil, nil
}

func (f *FakeCatalogRepo) CreateEditions(ctx context.Context, db bun.IDB, editions []*catalogdb.Edition) error {
	f.record("CreateEditions")
	if f.CreateEditionsFunc != nil {
		return f.CreateEditionsFunc(ctx, db, editions)
	}
	return nil
}

func (f *FakeCatalogRepo) UpdateEditionStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status catalogdomain.Status, reg catalogdomain.RegistrationStatus) error {
	f.record("UpdateEditionStatus")
	if f.UpdateEditionStatusFunc != nil {
		return f.UpdateEditionStatusFunc(ctx, db, id, status, reg)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeCatalogRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ catalogdb.Repository = (*FakeCatalogRepo)(nil)

// ------------------------
// Recording metrics
// ------------------------

type recordingMetrics struct {
	mu       sync.Mutex
	defaults map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{defaults: map[string]int{}}
}

func (m *recordingMetrics) RecordOperationAttempt(context.Context, string, string) {}
func (m *recordingMetrics) RecordOperationSuccess(context.Context, string, string) {}
func (m *recordingMetrics) RecordOperationFailure(context.Context, string, string) {}
func (m *recordingMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (m *recordingMetrics) RecordTimeParseFailure(context.Context) {}

func (m *recordingMetrics) RecordResolutionDefault(_ context.Context, field string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults[field]++
}

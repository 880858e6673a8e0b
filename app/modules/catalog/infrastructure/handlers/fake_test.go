package cataloghandlers

import (
	"context"

	"github.com/google/uuid"
	catalogservice "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/application"
)

// FakeCatalogService is a programmable fake for catalogservice.Service.
type FakeCatalogService struct {
	GetEventFunc            func(ctx context.Context, id uuid.UUID) (catalogservice.EventView, error)
	GetCompetitionFunc      func(ctx context.Context, id uuid.UUID) (catalogservice.CompetitionView, error)
	GetEditionFunc          func(ctx context.Context, id uuid.UUID) (catalogservice.EditionView, error)
	GetEditionBySlugFunc    func(ctx context.Context, slug string) (catalogservice.EditionView, error)
	GetEditionByYearFunc    func(ctx context.Context, competitionID uuid.UUID, year int) (catalogservice.EditionView, error)
	ListEditionsFunc        func(ctx context.Context, competitionID uuid.UUID) ([]catalogservice.ResolvedEditionView, error)
	GetResolvedEditionFunc  func(ctx context.Context, id uuid.UUID) (catalogservice.ResolvedEditionView, error)
	ResolveRawEditionFunc   func(ctx context.Context, raw []byte) (catalogservice.ResolvedEditionView, error)
	AvailableYearsFunc      func(ctx context.Context, competitionID uuid.UUID) ([]int, error)
	CreateBulkEditionsFunc  func(ctx context.Context, competitionID uuid.UUID, years []int) ([]catalogservice.EditionView, error)
	CreateEditionFunc       func(ctx context.Context, competitionID uuid.UUID, input catalogservice.CreateEditionInput) (catalogservice.EditionView, error)
	UpdateEditionStatusFunc func(ctx context.Context, id uuid.UUID, status, registrationStatus string) (catalogservice.StatusUpdateView, error)
}

func (f *FakeCatalogService) GetEvent(ctx context.Context, id uuid.UUID) (catalogservice.EventView, error) {
	if f.GetEventFunc != nil {
		return f.GetEventFunc(ctx, id)
	}
	return catalogservice.EventView{}, catalogservice.ErrEventNotFound
}

func (f *FakeCatalogService) GetCompetition(ctx context.Context, id uuid.UUID) (catalogservice.CompetitionView, error) {
	if f.GetCompetitionFunc != nil {
		return f.GetCompetitionFunc(ctx, id)
	}
	return catalogservice.CompetitionView{}, catalogservice.ErrCompetitionNotFound
}

func (f *FakeCatalogService) GetEdition(ctx context.Context, id uuid.UUID) (catalogservice.EditionView, error) {
	if f.GetEditionFunc != nil {
		return f.GetEditionFunc(ctx, id)
	}
	return catalogservice.EditionView{}, catalogservice.ErrEditionNotFound
}

func (f *FakeCatalogService) GetEditionBySlug(ctx context.Context, slug string) (catalogservice.EditionView, error) {
	if f.GetEditionBySlugFunc != nil {
		return f.GetEditionBySlugFunc(ctx, slug)
	}
	return catalogservice.EditionView{}, catalogservice.ErrEditionNotFound
}

func (f *FakeCatalogService) GetEditionByYear(ctx context.Context, competitionID uuid.UUID, year int) (catalogservice.EditionView, error) {
	if f.GetEditionByYearFunc != nil {
		return f.GetEditionByYearFunc(ctx, competitionID, year)
	}
	return catalogservice.EditionView{}, catalogservice.ErrEditionNotFound
}

func (f *FakeCatalogService) ListEditions(ctx context.Context, competitionID uuid.UUID) ([]catalogservice.ResolvedEditionView, error) {
	if f.ListEditionsFunc != nil {
		return f.ListEditionsFunc(ctx, competitionID)
	}
	return []catalogservice.ResolvedEditionView{}, nil
}

func (f *FakeCatalogService) GetResolvedEdition(ctx context.Context, id uuid.UUID) (catalogservice.ResolvedEditionView, error) {
	if f.GetResolvedEditionFunc != nil {
		return f.GetResolvedEditionFunc(ctx, id)
	}
	return catalogservice.ResolvedEditionView{}, catalogservice.ErrEditionNotFound
}

func (f *FakeCatalogService) ResolveRawEdition(ctx context.Context, raw []byte) (catalogservice.ResolvedEditionView, error) {
	if f.ResolveRawEditionFunc != nil {
		return f.ResolveRawEditionFunc(ctx, raw)
	}
	return catalogservice.ResolvedEditionView{}, nil
}

func (f *FakeCatalogService) AvailableYears(ctx context.Context, competitionID uuid.UUID) ([]int, error) {
	if f.AvailableYearsFunc != nil {
		return f.AvailableYearsFunc(ctx, competitionID)
	}
	return []int{}, nil
}

func (f *FakeCatalogService) CreateBulkEditions(ctx context.Context, competitionID uuid.UUID, years []int) ([]catalogservice.EditionView, error) {
	if f.CreateBulkEditionsFunc != nil {
		return f.CreateBulkEditionsFunc(ctx, competitionID, years)
	}
	return nil, nil
}

func (f *FakeCatalogService) CreateEdition(ctx context.Context, competitionID uuid.UUID, input catalogservice.CreateEditionInput) (catalogservice.EditionView, error) {
	if f.CreateEditionFunc != nil {
		return f.CreateEditionFunc(ctx, competitionID, input)
	}
	return catalogservice.EditionView{}, nil
}

func (f *FakeCatalogService) UpdateEditionStatus(ctx context.Context, id uuid.UUID, status, registrationStatus string) (catalogservice.StatusUpdateView, error) {
	if f.UpdateEditionStatusFunc != nil {
		return f.UpdateEditionStatusFunc(ctx, id, status, registrationStatus)
	}
	return catalogservice.StatusUpdateView{}, nil
}

var _ catalogservice.Service = (*FakeCatalogService)(nil)

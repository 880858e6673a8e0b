package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// CatalogLookupAdapter adapts the catalog repository to the participation
// service CatalogLookup port.
type CatalogLookupAdapter struct {
	catalogDB catalogdb.Repository
}

func NewCatalogLookupAdapter(repo catalogdb.Repository) *CatalogLookupAdapter {
	return &CatalogLookupAdapter{catalogDB: repo}
}

func (a *CatalogLookupAdapter) CompetitionExists(ctx context.Context, db bun.IDB, id uuid.UUID) (bool, error) {
	_, err := a.catalogDB.GetCompetitionByID(ctx, db, id)
	return exists(err)
}

func (a *CatalogLookupAdapter) EditionExists(ctx context.Context, db bun.IDB, id uuid.UUID) (bool, error) {
	_, err := a.catalogDB.GetEditionByID(ctx, db, id)
	return exists(err)
}

func exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, catalogdb.ErrNotFound) {
		return false, nil
	}
	return false, err
}

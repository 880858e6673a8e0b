//go:build integration

package catalogintegrationtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogservice "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/application"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/nicolapicasso/wwtrail-all-sub003/integration_tests/testutils"
)

func setup(t *testing.T) (*catalogservice.CatalogService, testutils.Catalog) {
	t.Helper()
	require.NoError(t, testEnv.Reset())

	obs := observability.NewNoop()
	service := catalogservice.NewCatalogService(catalogdb.NewRepository(testEnv.DB), obs.Logger, obs.Metrics, obs.Tracer, testEnv.DB)

	catalog, err := testutils.NewTestDataGenerator(42).InsertCatalog(testEnv.Ctx, testEnv.DB)
	require.NoError(t, err)
	return service, catalog
}

func TestResolvedEditionInheritsAndOverrides(t *testing.T) {
	service, catalog := setup(t)
	ctx := testEnv.Ctx

	base := 171.0
	_, err := testEnv.DB.NewUpdate().
		Model(catalog.Competition).
		Set("base_distance = ?", base).
		WherePK().
		Exec(ctx)
	require.NoError(t, err)

	inherited, err := service.CreateEdition(ctx, catalog.Competition.ID, catalogservice.CreateEditionInput{Year: 2024})
	require.NoError(t, err)

	override := 145.0
	overridden, err := service.CreateEdition(ctx, catalog.Competition.ID, catalogservice.CreateEditionInput{Year: 2025, Distance: &override})
	require.NoError(t, err)

	got, err := service.GetResolvedEdition(ctx, inherited.ID)
	require.NoError(t, err)
	assert.Equal(t, 171.0, got.ResolvedDistance)
	assert.Equal(t, catalog.Event.ID, got.Event.ID)
	assert.Equal(t, catalog.Competition.ID, got.Competition.ID)

	got, err = service.GetResolvedEdition(ctx, overridden.ID)
	require.NoError(t, err)
	assert.Equal(t, 145.0, got.ResolvedDistance)

	bySlug, err := service.GetEditionBySlug(ctx, overridden.Slug)
	require.NoError(t, err)
	assert.Equal(t, overridden.ID, bySlug.ID)
}

func TestBulkCreateAndYearIndex(t *testing.T) {
	service, catalog := setup(t)
	ctx := testEnv.Ctx

	created, err := service.CreateBulkEditions(ctx, catalog.Competition.ID, []int{2022, 2024, 2023})
	require.NoError(t, err)
	assert.Len(t, created, 3)

	years, err := service.AvailableYears(ctx, catalog.Competition.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023, 2022}, years)

	_, err = service.CreateBulkEditions(ctx, catalog.Competition.ID, []int{2025, 2024})
	assert.ErrorIs(t, err, catalogservice.ErrYearConflict)

	years, err = service.AvailableYears(ctx, catalog.Competition.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023, 2022}, years, "a rejected batch creates nothing")

	listed, err := service.ListEditions(ctx, catalog.Competition.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, 2024, listed[0].Year)
}

func TestUpdateEditionStatusStoresIncoherentPair(t *testing.T) {
	service, catalog := setup(t)
	ctx := testEnv.Ctx

	edition, err := service.CreateEdition(ctx, catalog.Competition.ID, catalogservice.CreateEditionInput{Year: 2024})
	require.NoError(t, err)

	got, err := service.UpdateEditionStatus(ctx, edition.ID, "finished", "open")
	require.NoError(t, err)
	assert.Equal(t, catalogdomain.StatusFinished, got.Edition.Status)
	assert.Equal(t, catalogdomain.RegistrationOpen, got.Edition.RegistrationStatus)
	assert.Len(t, got.Warnings, 1)

	got, err = service.UpdateEditionStatus(ctx, edition.ID, "CANCELLED", "CLOSED")
	require.NoError(t, err)
	assert.Empty(t, got.Warnings)

	_, err = service.UpdateEditionStatus(ctx, edition.ID, "postponed", "CLOSED")
	assert.ErrorIs(t, err, catalogdomain.ErrUnknownStatus)
}

func TestCreateEditionsRejectsDuplicateYearAtTheStore(t *testing.T) {
	_, catalog := setup(t)
	ctx := testEnv.Ctx
	repo := catalogdb.NewRepository(testEnv.DB)
	gen := testutils.NewTestDataGenerator(7)

	require.NoError(t, repo.CreateEditions(ctx, nil, []*catalogdb.Edition{gen.GenerateEdition(catalog.Competition.ID, 2020)}))

	err := repo.CreateEditions(ctx, nil, []*catalogdb.Edition{gen.GenerateEdition(catalog.Competition.ID, 2020)})
	assert.ErrorIs(t, err, catalogdb.ErrDuplicate)
}

package catalogservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/operation"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// CatalogService implements the Service interface.
type CatalogService struct {
	repo    catalogdb.Repository
	logger  *slog.Logger
	metrics observability.Metrics
	runner  *operation.Runner
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	repo catalogdb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &CatalogService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		runner: &operation.Runner{
			Service: "CatalogService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
	}
}

// CreateEditionInput carries the optional overrides of a single new edition.
type CreateEditionInput struct {
	Year                 int        `json:"year"`
	Distance             *float64   `json:"distance"`
	Elevation            *int       `json:"elevation"`
	MaxParticipants      *int       `json:"maxParticipants"`
	City                 *string    `json:"city"`
	Status               string     `json:"status"`
	RegistrationStatus   string     `json:"registrationStatus"`
	RegistrationOpensAt  *time.Time `json:"registrationOpensAt"`
	RegistrationClosesAt *time.Time `json:"registrationClosesAt"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
}

// GetEvent retrieves an event.
func (s *CatalogService) GetEvent(ctx context.Context, id uuid.UUID) (EventView, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetEvent", id.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[EventView, error], error) {
			event, err := s.repo.GetEventByID(ctx, db, id)
			if err != nil {
				if errors.Is(err, catalogdb.ErrNotFound) {
					return results.FailureResult[EventView, error](ErrEventNotFound), nil
				}
				return results.OperationResult[EventView, error]{}, fmt.Errorf("failed to get event: %w", err)
			}
			return results.SuccessResult[EventView, error](newEventView(event.Fields())), nil
		}))
}

// GetCompetition retrieves a competition with its event.
func (s *CatalogService) GetCompetition(ctx context.Context, id uuid.UUID) (CompetitionView, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetCompetition", id.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[CompetitionView, error], error) {
			competition, err := s.repo.GetCompetitionByID(ctx, db, id)
			if err != nil {
				if errors.Is(err, catalogdb.ErrNotFound) {
					return results.FailureResult[CompetitionView, error](ErrCompetitionNotFound), nil
				}
				return results.OperationResult[CompetitionView, error]{}, fmt.Errorf("failed to get competition: %w", err)
			}
			return results.SuccessResult[CompetitionView, error](newCompetitionViewFromModel(competition)), nil
		}))
}

// GetEdition retrieves a stored edition.
func (s *CatalogService) GetEdition(ctx context.Context, id uuid.UUID) (EditionView, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetEdition", id.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[EditionView, error], error) {
			return s.editionResult(s.repo.GetEditionByID(ctx, db, id))
		}))
}

// GetEditionBySlug retrieves a stored edition by slug.
func (s *CatalogService) GetEditionBySlug(ctx context.Context, slug string) (EditionView, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetEditionBySlug", slug,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[EditionView, error], error) {
			return s.editionResult(s.repo.GetEditionBySlug(ctx, db, slug))
		}))
}

// GetEditionByYear retrieves the edition of a competition for a year.
func (s *CatalogService) GetEditionByYear(ctx context.Context, competitionID uuid.UUID, year int) (EditionView, error) {
	identifier := competitionID.String() + "/" + strconv.Itoa(year)
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetEditionByYear", identifier,
		func(ctx context.Context, db bun.IDB) (results.OperationResult[EditionView, error], error) {
			return s.editionResult(s.repo.GetEditionByYear(ctx, db, competitionID, year))
		}))
}

func (s *CatalogService) editionResult(edition *catalogdb.Edition, err error) (results.OperationResult[EditionView, error], error) {
	if err != nil {
		if errors.Is(err, catalogdb.ErrNotFound) {
			return results.FailureResult[EditionView, error](ErrEditionNotFound), nil
		}
		return results.OperationResult[EditionView, error]{}, fmt.Errorf("failed to get edition: %w", err)
	}
	return results.SuccessResult[EditionView, error](newEditionView(edition)), nil
}

// ListEditions returns the resolved editions of a competition, newest first.
func (s *CatalogService) ListEditions(ctx context.Context, competitionID uuid.UUID) ([]ResolvedEditionView, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "ListEditions", competitionID.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]ResolvedEditionView, error], error) {
			if _, err := s.repo.GetCompetitionByID(ctx, db, competitionID); err != nil {
				if errors.Is(err, catalogdb.ErrNotFound) {
					return results.FailureResult[[]ResolvedEditionView, error](ErrCompetitionNotFound), nil
				}
				return results.OperationResult[[]ResolvedEditionView, error]{}, fmt.Errorf("failed to get competition: %w", err)
			}

			editions, err := s.repo.ListEditionsByCompetition(ctx, db, competitionID)
			if err != nil {
				return results.OperationResult[[]ResolvedEditionView, error]{}, fmt.Errorf("failed to list editions: %w", err)
			}

			views := make([]ResolvedEditionView, 0, len(editions))
			for _, e := range editions {
				resolved := catalogdomain.ResolveNormalized(e.Normalized())
				s.recordDefaults(ctx, resolved)
				views = append(views, newResolvedEditionView(resolved))
			}
			return results.SuccessResult[[]ResolvedEditionView, error](views), nil
		}))
}

// GetResolvedEdition reads an edition with its parents and resolves the
// inheritable attributes.
func (s *CatalogService) GetResolvedEdition(ctx context.Context, id uuid.UUID) (ResolvedEditionView, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetResolvedEdition", id.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[ResolvedEditionView, error], error) {
			row, err := s.repo.GetFlatEdition(ctx, db, id)
			if err != nil {
				if errors.Is(err, catalogdb.ErrNotFound) {
					return results.FailureResult[ResolvedEditionView, error](ErrEditionNotFound), nil
				}
				return results.OperationResult[ResolvedEditionView, error]{}, fmt.Errorf("failed to read edition: %w", err)
			}

			resolved := catalogdomain.ResolveNormalized(catalogdomain.Normalize(row))
			s.recordDefaults(ctx, resolved)
			return results.SuccessResult[ResolvedEditionView, error](newResolvedEditionView(resolved)), nil
		}))
}

// ResolveRawEdition resolves an edition record supplied by the caller in
// either wire shape. Malformed input resolves to defaults.
func (s *CatalogService) ResolveRawEdition(ctx context.Context, raw []byte) (ResolvedEditionView, error) {
	return operation.Unwrap(operation.WithTelemetry(s.runner, ctx, "ResolveRawEdition", "raw",
		func(ctx context.Context) (results.OperationResult[ResolvedEditionView, error], error) {
			normalized, shape := catalogdomain.NormalizeJSON(raw)
			s.logger.DebugContext(ctx, "Normalized raw edition", slog.String("shape", string(shape)))

			resolved := catalogdomain.ResolveNormalized(normalized)
			s.recordDefaults(ctx, resolved)
			return results.SuccessResult[ResolvedEditionView, error](newResolvedEditionView(resolved)), nil
		}))
}

// AvailableYears returns the distinct years with an edition, newest first.
func (s *CatalogService) AvailableYears(ctx context.Context, competitionID uuid.UUID) ([]int, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "AvailableYears", competitionID.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]int, error], error) {
			if _, err := s.repo.GetCompetitionByID(ctx, db, competitionID); err != nil {
				if errors.Is(err, catalogdb.ErrNotFound) {
					return results.FailureResult[[]int, error](ErrCompetitionNotFound), nil
				}
				return results.OperationResult[[]int, error]{}, fmt.Errorf("failed to get competition: %w", err)
			}

			years, err := s.repo.ListEditionYears(ctx, db, competitionID)
			if err != nil {
				return results.OperationResult[[]int, error]{}, fmt.Errorf("failed to list years: %w", err)
			}
			return results.SuccessResult[[]int, error](catalogdomain.SortYearsDesc(years)), nil
		}))
}

// CreateBulkEditions creates one edition per year in a single transaction.
// Any taken or repeated year fails the whole batch and nothing is created.
func (s *CatalogService) CreateBulkEditions(ctx context.Context, competitionID uuid.UUID, years []int) ([]EditionView, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "CreateBulkEditions", competitionID.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]EditionView, error], error) {
			return s.createEditionsLogic(ctx, db, competitionID, years, func(year int) *catalogdb.Edition {
				return newEdition(competitionID, year)
			})
		}))
}

// CreateEdition creates a single edition with optional overrides.
func (s *CatalogService) CreateEdition(ctx context.Context, competitionID uuid.UUID, input CreateEditionInput) (EditionView, error) {
	status := catalogdomain.StatusUpcoming
	if input.Status != "" {
		parsed, err := catalogdomain.ParseStatus(input.Status)
		if err != nil {
			return EditionView{}, err
		}
		status = parsed
	}
	reg := catalogdomain.RegistrationComingSoon
	if input.RegistrationStatus != "" {
		parsed, err := catalogdomain.ParseRegistrationStatus(input.RegistrationStatus)
		if err != nil {
			return EditionView{}, err
		}
		reg = parsed
	}

	views, err := operation.Unwrap(operation.Run(s.runner, ctx, "CreateEdition", competitionID.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]EditionView, error], error) {
			return s.createEditionsLogic(ctx, db, competitionID, []int{input.Year}, func(year int) *catalogdb.Edition {
				e := newEdition(competitionID, year)
				e.Distance = input.Distance
				e.Elevation = input.Elevation
				e.MaxParticipants = input.MaxParticipants
				e.City = input.City
				e.Status = status
				e.RegistrationStatus = reg
				e.RegistrationOpensAt = input.RegistrationOpensAt
				e.RegistrationClosesAt = input.RegistrationClosesAt
				e.StartDate = input.StartDate
				e.EndDate = input.EndDate
				return e
			})
		}))
	if err != nil {
		return EditionView{}, err
	}

	if inc := catalogdomain.ValidateStatusPair(status, reg); inc != nil {
		s.logger.WarnContext(ctx, "Edition created with incoherent status pair",
			slog.String("edition_id", views[0].ID.String()),
			slog.String("incoherence", inc.String()),
		)
	}
	return views[0], nil
}

func (s *CatalogService) createEditionsLogic(
	ctx context.Context,
	db bun.IDB,
	competitionID uuid.UUID,
	years []int,
	build func(year int) *catalogdb.Edition,
) (results.OperationResult[[]EditionView, error], error) {
	competition, err := s.repo.GetCompetitionByID(ctx, db, competitionID)
	if err != nil {
		if errors.Is(err, catalogdb.ErrNotFound) {
			return results.FailureResult[[]EditionView, error](ErrCompetitionNotFound), nil
		}
		return results.OperationResult[[]EditionView, error]{}, fmt.Errorf("failed to get competition: %w", err)
	}

	existing, err := s.repo.ListEditionYears(ctx, db, competitionID)
	if err != nil {
		return results.OperationResult[[]EditionView, error]{}, fmt.Errorf("failed to list years: %w", err)
	}
	if err := catalogdomain.ValidateBulkYears(years, existing); err != nil {
		return results.FailureResult[[]EditionView, error](err), nil
	}

	editions := make([]*catalogdb.Edition, 0, len(years))
	for _, year := range years {
		e := build(year)
		e.Slug = catalogdomain.EditionSlug(competition.Slug, year)
		editions = append(editions, e)
	}

	if err := s.repo.CreateEditions(ctx, db, editions); err != nil {
		if errors.Is(err, catalogdb.ErrDuplicate) {
			return results.FailureResult[[]EditionView, error](
				apperrors.Wrap(ErrYearConflict, "an edition for one of the years %v already exists", years),
			), nil
		}
		return results.OperationResult[[]EditionView, error]{}, fmt.Errorf("failed to create editions: %w", err)
	}

	views := make([]EditionView, 0, len(editions))
	for _, e := range editions {
		views = append(views, newEditionView(e))
	}
	return results.SuccessResult[[]EditionView, error](views), nil
}

func newEdition(competitionID uuid.UUID, year int) *catalogdb.Edition {
	return &catalogdb.Edition{
		ID:                 uuid.New(),
		CompetitionID:      competitionID,
		Year:               year,
		Status:             catalogdomain.StatusUpcoming,
		RegistrationStatus: catalogdomain.RegistrationComingSoon,
	}
}

// UpdateEditionStatus stores the requested status pair as given and reports
// incoherent combinations as warnings without correcting them.
func (s *CatalogService) UpdateEditionStatus(ctx context.Context, id uuid.UUID, status, registrationStatus string) (StatusUpdateView, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "UpdateEditionStatus", id.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[StatusUpdateView, error], error) {
			st, err := catalogdomain.ParseStatus(status)
			if err != nil {
				return results.FailureResult[StatusUpdateView, error](err), nil
			}
			reg, err := catalogdomain.ParseRegistrationStatus(registrationStatus)
			if err != nil {
				return results.FailureResult[StatusUpdateView, error](err), nil
			}

			if err := s.repo.UpdateEditionStatus(ctx, db, id, st, reg); err != nil {
				if errors.Is(err, catalogdb.ErrNotFound) {
					return results.FailureResult[StatusUpdateView, error](ErrEditionNotFound), nil
				}
				return results.OperationResult[StatusUpdateView, error]{}, fmt.Errorf("failed to update status: %w", err)
			}

			edition, err := s.repo.GetEditionByID(ctx, db, id)
			if err != nil {
				return results.OperationResult[StatusUpdateView, error]{}, fmt.Errorf("failed to reload edition: %w", err)
			}

			view := StatusUpdateView{Edition: newEditionView(edition), Warnings: []string{}}
			if inc := catalogdomain.ValidateStatusPair(st, reg); inc != nil {
				view.Warnings = append(view.Warnings, inc.String())
				s.logger.WarnContext(ctx, "Edition status pair is incoherent",
					slog.String("edition_id", id.String()),
					slog.String("incoherence", inc.String()),
				)
			}
			return results.SuccessResult[StatusUpdateView, error](view), nil
		}))
}

// recordDefaults makes silently defaulted resolution results visible.
func (s *CatalogService) recordDefaults(ctx context.Context, resolved catalogdomain.ResolvedEdition) {
	fields := resolved.DefaultedFields()
	if len(fields) == 0 {
		return
	}
	for _, field := range fields {
		s.metrics.RecordResolutionDefault(ctx, field)
	}
	s.logger.DebugContext(ctx, "Resolved edition fell back to defaults",
		slog.String("edition_id", resolved.Edition.ID.String()),
		slog.Any("fields", fields),
	)
}

var _ Service = (*CatalogService)(nil)

package participationservice

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	participationdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/repositories"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/clock"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/eventbus"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/operation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// ParticipationService implements the Service interface.
type ParticipationService struct {
	repo      participationdb.Repository
	catalog   CatalogLookup
	users     UserDirectory
	cache     RankingCache
	publisher message.Publisher
	clock     clock.Clock
	logger    *slog.Logger
	metrics   observability.Metrics
	runner    *operation.Runner
}

// Dependencies groups the collaborators of ParticipationService. Cache and
// Publisher may be nil.
type Dependencies struct {
	Repo      participationdb.Repository
	Catalog   CatalogLookup
	Users     UserDirectory
	Cache     RankingCache
	Publisher message.Publisher
	Clock     clock.Clock
	Logger    *slog.Logger
	Metrics   observability.Metrics
	Tracer    trace.Tracer
	DB        *bun.DB
}

// NewParticipationService creates a new ParticipationService.
func NewParticipationService(deps Dependencies) *ParticipationService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	return &ParticipationService{
		repo:      deps.Repo,
		catalog:   deps.Catalog,
		users:     deps.Users,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		clock:     clk,
		logger:    logger,
		metrics:   metrics,
		runner: &operation.Runner{
			Service: "ParticipationService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  deps.Tracer,
			DB:      deps.DB,
		},
	}
}

// ledgerFields are the values a mark or result writes, with the columns
// they occupy.
type ledgerFields struct {
	Status            participationdomain.Status
	FinishTime        *string
	FinishTimeSeconds *int
	Position          *int
	CategoryPosition  *int
	Notes             *string
	PersonalRating    *int
	CompletedAt       *time.Time
	BibNumber         *string
	CategoryType      *string
	CategoryName      *string

	columns []string
}

func (f *ledgerFields) set(column string) {
	f.columns = append(f.columns, column)
}

// resultFields validates a result and derives the stored values. The row
// becomes COMPLETED and completedAt defaults to the clock.
func (s *ParticipationService) resultFields(ctx context.Context, in ResultInput, withEditionFields bool) (ledgerFields, error) {
	if err := participationdomain.ValidateRating(in.PersonalRating); err != nil {
		return ledgerFields{}, err
	}

	completedAt := s.clock.Now()
	if in.CompletedAt != nil {
		completedAt = in.CompletedAt.UTC()
	}
	f := ledgerFields{Status: participationdomain.StatusCompleted, CompletedAt: &completedAt}
	f.set(participationdb.ColStatus)
	f.set(participationdb.ColCompletedAt)

	if in.FinishTime != nil && strings.TrimSpace(*in.FinishTime) != "" {
		finish := strings.TrimSpace(*in.FinishTime)
		seconds := s.parseFinishTime(ctx, finish)
		f.FinishTime = &finish
		f.FinishTimeSeconds = &seconds
		f.set(participationdb.ColFinishTime)
		f.set(participationdb.ColFinishTimeSeconds)
	}
	if in.Position != nil {
		f.Position = in.Position
		f.set(participationdb.ColPosition)
	}
	if in.CategoryPosition != nil {
		f.CategoryPosition = in.CategoryPosition
		f.set(participationdb.ColCategoryPosition)
	}
	if in.Notes != nil {
		f.Notes = in.Notes
		f.set(participationdb.ColNotes)
	}
	if in.PersonalRating != nil {
		f.PersonalRating = in.PersonalRating
		f.set(participationdb.ColPersonalRating)
	}

	if !withEditionFields {
		return f, nil
	}
	if in.BibNumber != nil {
		f.BibNumber = in.BibNumber
		f.set(participationdb.ColBibNumber)
	}
	if in.CategoryType != nil {
		f.CategoryType = in.CategoryType
		f.set(participationdb.ColCategoryType)
	}
	if in.CategoryName != nil {
		f.CategoryName = in.CategoryName
		f.set(participationdb.ColCategoryName)
	}
	return f, nil
}

// parseFinishTime keeps the lenient 0 fallback but makes it visible.
func (s *ParticipationService) parseFinishTime(ctx context.Context, finish string) int {
	seconds, ok := participationdomain.ParseTimeChecked(finish)
	if !ok {
		s.metrics.RecordTimeParseFailure(ctx)
		s.logger.WarnContext(ctx, "finish time did not parse cleanly",
			slog.String("finish_time", finish),
			slog.Int("seconds", seconds),
		)
	}
	return seconds
}

// publishChange emits a participation.changed event. The write has already
// committed, so a failed publish is logged and not returned.
func (s *ParticipationService) publishChange(ctx context.Context, payload participationdomain.ParticipationChangedPayload) {
	if s.publisher == nil {
		return
	}
	payload.OccurredAt = s.clock.Now()
	msg, err := eventbus.NewMessage(ctx, payload)
	if err == nil {
		err = s.publisher.Publish(participationdomain.TopicParticipationChanged, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish participation change",
			slog.String("user_id", payload.UserID.String()),
			slog.String("target_id", payload.TargetID.String()),
			slog.Any("error", err),
		)
	}
}

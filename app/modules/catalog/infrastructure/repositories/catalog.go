package catalogdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	"github.com/nicolapicasso/wwtrail-all-sub003/db/bundb"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new catalog repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetEventByID retrieves an event.
func (r *Impl) GetEventByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Event, error) {
	db = r.resolveDB(db)
	event := new(Event)
	err := db.NewSelect().
		Model(event).
		Where("ev.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// GetCompetitionByID retrieves a competition with its event.
func (r *Impl) GetCompetitionByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Competition, error) {
	db = r.resolveDB(db)
	competition := new(Competition)
	err := db.NewSelect().
		Model(competition).
		Relation("Event").
		Where("co.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	return competition, nil
}

// GetEditionByID retrieves an edition with its competition and event.
func (r *Impl) GetEditionByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Edition, error) {
	return r.getEdition(ctx, db, "ed.id = ?", id)
}

// GetEditionBySlug retrieves an edition with its parents by slug.
func (r *Impl) GetEditionBySlug(ctx context.Context, db bun.IDB, slug string) (*Edition, error) {
	return r.getEdition(ctx, db, "ed.slug = ?", slug)
}

// GetEditionByYear retrieves the edition of a competition for a year.
func (r *Impl) GetEditionByYear(ctx context.Context, db bun.IDB, competitionID uuid.UUID, year int) (*Edition, error) {
	db = r.resolveDB(db)
	edition := new(Edition)
	err := db.NewSelect().
		Model(edition).
		Relation("Competition").
		Relation("Competition.Event").
		Where("ed.competition_id = ?", competitionID).
		Where("ed.year = ?", year).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get edition by year: %w", err)
	}
	return edition, nil
}

func (r *Impl) getEdition(ctx context.Context, db bun.IDB, where string, arg any) (*Edition, error) {
	db = r.resolveDB(db)
	edition := new(Edition)
	err := db.NewSelect().
		Model(edition).
		Relation("Competition").
		Relation("Competition.Event").
		Where(where, arg).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get edition: %w", err)
	}
	return edition, nil
}

// ListEditionsByCompetition lists a competition's editions, newest first.
func (r *Impl) ListEditionsByCompetition(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]*Edition, error) {
	db = r.resolveDB(db)
	var editions []*Edition
	err := db.NewSelect().
		Model(&editions).
		Relation("Competition").
		Relation("Competition.Event").
		Where("ed.competition_id = ?", competitionID).
		Order("ed.year DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list editions: %w", err)
	}
	return editions, nil
}

// GetFlatEdition reads an edition and its parents as one row. Parent columns
// are prefixed (competitionName, eventCity, ...) the way list endpoints
// expose them.
func (r *Impl) GetFlatEdition(ctx context.Context, db bun.IDB, id uuid.UUID) (map[string]any, error) {
	db = r.resolveDB(db)
	row := map[string]any{}
	err := db.NewSelect().
		TableExpr("editions AS ed").
		ColumnExpr(`ed.id AS "id"`).
		ColumnExpr(`ed.competition_id AS "competitionId"`).
		ColumnExpr(`ed.year AS "year"`).
		ColumnExpr(`ed.slug AS "slug"`).
		ColumnExpr(`ed.distance AS "distance"`).
		ColumnExpr(`ed.elevation AS "elevation"`).
		ColumnExpr(`ed.max_participants AS "maxParticipants"`).
		ColumnExpr(`ed.city AS "city"`).
		ColumnExpr(`ed.current_participants AS "currentParticipants"`).
		ColumnExpr(`ed.status AS "status"`).
		ColumnExpr(`ed.registration_status AS "registrationStatus"`).
		ColumnExpr(`ed.registration_opens_at AS "registrationOpensAt"`).
		ColumnExpr(`ed.registration_closes_at AS "registrationClosesAt"`).
		ColumnExpr(`ed.start_date AS "startDate"`).
		ColumnExpr(`ed.end_date AS "endDate"`).
		ColumnExpr(`co.name AS "competitionName"`).
		ColumnExpr(`co.slug AS "competitionSlug"`).
		ColumnExpr(`co.type AS "competitionType"`).
		ColumnExpr(`co.status AS "competitionStatus"`).
		ColumnExpr(`co.base_distance AS "competitionBaseDistance"`).
		ColumnExpr(`co.base_elevation AS "competitionBaseElevation"`).
		ColumnExpr(`co.base_max_participants AS "competitionBaseMaxParticipants"`).
		ColumnExpr(`ev.id AS "eventId"`).
		ColumnExpr(`ev.name AS "eventName"`).
		ColumnExpr(`ev.slug AS "eventSlug"`).
		ColumnExpr(`ev.city AS "eventCity"`).
		ColumnExpr(`ev.country AS "eventCountry"`).
		Join("LEFT JOIN competitions AS co ON co.id = ed.competition_id").
		Join("LEFT JOIN events AS ev ON ev.id = co.event_id").
		Where("ed.id = ?", id).
		Limit(1).
		Scan(ctx, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flat edition: %w", err)
	}
	if len(row) == 0 {
		return nil, ErrNotFound
	}
	return row, nil
}

// ListEditionYears returns the years of a competition's editions, newest
// first.
func (r *Impl) ListEditionYears(ctx context.Context, db bun.IDB, competitionID uuid.UUID) ([]int, error) {
	db = r.resolveDB(db)
	var years []int
	err := db.NewSelect().
		Model((*Edition)(nil)).
		Column("year").
		Where("competition_id = ?", competitionID).
		Order("year DESC").
		Scan(ctx, &years)
	if err != nil {
		return nil, fmt.Errorf("failed to list edition years: %w", err)
	}
	return years, nil
}

// CreateEditions inserts editions in one statement, so a unique violation on
// any row inserts none of them.
func (r *Impl) CreateEditions(ctx context.Context, db bun.IDB, editions []*Edition) error {
	if len(editions) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for _, e := range editions {
		e.CreatedAt = now
		e.UpdatedAt = now
	}
	_, err := db.NewInsert().
		Model(&editions).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if bundb.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create editions: %w", err)
	}
	return nil
}

// UpdateEditionStatus stores a status pair as given.
func (r *Impl) UpdateEditionStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status catalogdomain.Status, reg catalogdomain.RegistrationStatus) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Edition)(nil)).
		Set("status = ?", status).
		Set("registration_status = ?", reg).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update edition status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

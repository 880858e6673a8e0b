package participationdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	"github.com/nicolapicasso/wwtrail-all-sub003/db/bundb"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new participation ledger repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// UpsertCompetitionEntry runs inside its own savepoint when db is a
// transaction, so a lost race leaves the outer transaction usable.
func (r *Impl) UpsertCompetitionEntry(ctx context.Context, db bun.IDB, entry *UserCompetition, columns []string) error {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return r.upsert(ctx, db, entry, "user_id, competition_id", columns)
}

func (r *Impl) UpsertEditionEntry(ctx context.Context, db bun.IDB, entry *UserEdition, columns []string) error {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return r.upsert(ctx, db, entry, "user_id, edition_id", columns)
}

func (r *Impl) upsert(ctx context.Context, db bun.IDB, model any, conflict string, columns []string) error {
	db = r.resolveDB(db)
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewInsert().
			Model(model).
			On("CONFLICT (" + conflict + ") DO UPDATE")
		for _, col := range columns {
			q = q.Set("? = EXCLUDED.?", bun.Ident(col), bun.Ident(col))
		}
		_, err := q.Set("updated_at = EXCLUDED.updated_at").
			Returning("*").
			Exec(ctx)
		if err != nil {
			if bundb.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to upsert participation: %w", err)
		}
		return nil
	})
}

func (r *Impl) UpdateCompetitionEntry(ctx context.Context, db bun.IDB, entry *UserCompetition, columns []string) error {
	entry.UpdatedAt = time.Now().UTC()
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(entry).
		Column(withUpdatedAt(columns)...).
		Where("user_id = ?", entry.UserID).
		Where("competition_id = ?", entry.CompetitionID).
		Returning("*").
		Exec(ctx)
	return checkAffected(result, err, "update competition participation")
}

func (r *Impl) UpdateEditionEntry(ctx context.Context, db bun.IDB, entry *UserEdition, columns []string) error {
	entry.UpdatedAt = time.Now().UTC()
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(entry).
		Column(withUpdatedAt(columns)...).
		Where("user_id = ?", entry.UserID).
		Where("edition_id = ?", entry.EditionID).
		Returning("*").
		Exec(ctx)
	return checkAffected(result, err, "update edition participation")
}

func (r *Impl) DeleteCompetitionEntry(ctx context.Context, db bun.IDB, userID, competitionID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*UserCompetition)(nil)).
		Where("user_id = ?", userID).
		Where("competition_id = ?", competitionID).
		Exec(ctx)
	return checkAffected(result, err, "delete competition participation")
}

func (r *Impl) DeleteEditionEntry(ctx context.Context, db bun.IDB, userID, editionID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*UserEdition)(nil)).
		Where("user_id = ?", userID).
		Where("edition_id = ?", editionID).
		Exec(ctx)
	return checkAffected(result, err, "delete edition participation")
}

func (r *Impl) ListCompetitionEntries(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*UserCompetition, error) {
	db = r.resolveDB(db)
	var entries []*UserCompetition
	err := db.NewSelect().
		Model(&entries).
		Relation("Competition").
		Where("uc.user_id = ?", userID).
		Order("uc.updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competition participation: %w", err)
	}
	return entries, nil
}

func (r *Impl) ListEditionEntries(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*UserEdition, error) {
	db = r.resolveDB(db)
	var entries []*UserEdition
	err := db.NewSelect().
		Model(&entries).
		Relation("Edition").
		Relation("Edition.Competition").
		Relation("Edition.Competition.Event").
		Where("ue.user_id = ?", userID).
		Order("ue.updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list edition participation: %w", err)
	}
	return entries, nil
}

type completedCount struct {
	UserID uuid.UUID `bun:"user_id"`
	Count  int       `bun:"count"`
}

func (r *Impl) CountCompletedByUser(ctx context.Context, db bun.IDB, limit int) ([]participationdomain.UserCount, error) {
	db = r.resolveDB(db)
	var rows []completedCount
	err := db.NewSelect().
		Model((*UserCompetition)(nil)).
		Column("uc.user_id").
		ColumnExpr("COUNT(*) AS count").
		Where("uc.status = ?", participationdomain.StatusCompleted).
		Group("uc.user_id").
		OrderExpr("count DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed participation: %w", err)
	}

	counts := make([]participationdomain.UserCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, participationdomain.UserCount{UserID: row.UserID, Count: row.Count})
	}
	return counts, nil
}

func withUpdatedAt(columns []string) []string {
	out := make([]string, 0, len(columns)+1)
	out = append(out, columns...)
	return append(out, "updated_at")
}

func checkAffected(result sql.Result, err error, op string) error {
	if err != nil {
		if bundb.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to %s: %w", op, err)
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

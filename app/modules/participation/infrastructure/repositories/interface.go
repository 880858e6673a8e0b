package participationdb

import (
	"context"

	"github.com/google/uuid"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for the participation ledger.
type Repository interface {
	// UpsertCompetitionEntry inserts the row or, when the user already has
	// one for the competition, updates the listed columns. The stored row is
	// scanned back into entry.
	UpsertCompetitionEntry(ctx context.Context, db bun.IDB, entry *UserCompetition, columns []string) error

	// UpdateCompetitionEntry updates the listed columns of an existing row.
	UpdateCompetitionEntry(ctx context.Context, db bun.IDB, entry *UserCompetition, columns []string) error

	DeleteCompetitionEntry(ctx context.Context, db bun.IDB, userID, competitionID uuid.UUID) error

	// ListCompetitionEntries lists a user's rows with their competitions,
	// most recently updated first.
	ListCompetitionEntries(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*UserCompetition, error)

	UpsertEditionEntry(ctx context.Context, db bun.IDB, entry *UserEdition, columns []string) error
	UpdateEditionEntry(ctx context.Context, db bun.IDB, entry *UserEdition, columns []string) error
	DeleteEditionEntry(ctx context.Context, db bun.IDB, userID, editionID uuid.UUID) error

	// ListEditionEntries lists a user's edition rows with the edition,
	// competition and event loaded.
	ListEditionEntries(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*UserEdition, error)

	// CountCompletedByUser returns users ordered by their number of
	// COMPLETED competition rows, highest first.
	CountCompletedByUser(ctx context.Context, db bun.IDB, limit int) ([]participationdomain.UserCount, error)
}

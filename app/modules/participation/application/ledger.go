package participationservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	participationdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/repositories"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/operation"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/results"
	"github.com/uptrace/bun"
)

type competitionResult = results.OperationResult[*participationdb.UserCompetition, error]
type editionResult = results.OperationResult[*participationdb.UserEdition, error]

// MarkCompetition sets the user's status for a competition, creating the
// row on first use.
func (s *ParticipationService) MarkCompetition(ctx context.Context, userID, competitionID uuid.UUID, status string) (*participationdb.UserCompetition, error) {
	entry, err := operation.Unwrap(operation.Run(s.runner, ctx, "MarkCompetition", competitionID.String(),
		func(ctx context.Context, db bun.IDB) (competitionResult, error) {
			parsed, err := participationdomain.ParseStatus(status)
			if err != nil {
				return results.FailureResult[*participationdb.UserCompetition, error](err), nil
			}
			fields := ledgerFields{Status: parsed}
			fields.set(participationdb.ColStatus)
			return s.writeCompetition(ctx, db, userID, competitionID, fields)
		}))
	if err != nil {
		return nil, err
	}
	s.publishChange(ctx, participationdomain.ParticipationChangedPayload{
		UserID:     userID,
		TargetKind: participationdomain.TargetCompetition,
		TargetID:   competitionID,
		Change:     participationdomain.ChangeMarked,
		Status:     entry.Status,
	})
	return entry, nil
}

// AddCompetitionResult records a finished competition.
func (s *ParticipationService) AddCompetitionResult(ctx context.Context, userID, competitionID uuid.UUID, input ResultInput) (*participationdb.UserCompetition, error) {
	entry, err := operation.Unwrap(operation.Run(s.runner, ctx, "AddCompetitionResult", competitionID.String(),
		func(ctx context.Context, db bun.IDB) (competitionResult, error) {
			fields, err := s.resultFields(ctx, input, false)
			if err != nil {
				return results.FailureResult[*participationdb.UserCompetition, error](err), nil
			}
			return s.writeCompetition(ctx, db, userID, competitionID, fields)
		}))
	if err != nil {
		return nil, err
	}
	s.publishChange(ctx, participationdomain.ParticipationChangedPayload{
		UserID:     userID,
		TargetKind: participationdomain.TargetCompetition,
		TargetID:   competitionID,
		Change:     participationdomain.ChangeResult,
		Status:     entry.Status,
	})
	return entry, nil
}

func (s *ParticipationService) writeCompetition(ctx context.Context, db bun.IDB, userID, competitionID uuid.UUID, f ledgerFields) (competitionResult, error) {
	exists, err := s.catalog.CompetitionExists(ctx, db, competitionID)
	if err != nil {
		return competitionResult{}, fmt.Errorf("failed to look up competition: %w", err)
	}
	if !exists {
		return results.FailureResult[*participationdb.UserCompetition, error](ErrCompetitionNotFound), nil
	}

	entry := &participationdb.UserCompetition{
		UserID:            userID,
		CompetitionID:     competitionID,
		Status:            f.Status,
		FinishTime:        f.FinishTime,
		FinishTimeSeconds: f.FinishTimeSeconds,
		Position:          f.Position,
		CategoryPosition:  f.CategoryPosition,
		Notes:             f.Notes,
		PersonalRating:    f.PersonalRating,
		CompletedAt:       f.CompletedAt,
	}

	err = s.repo.UpsertCompetitionEntry(ctx, db, entry, f.columns)
	if errors.Is(err, participationdb.ErrDuplicate) {
		s.logger.InfoContext(ctx, "participation insert raced, retrying as update",
			slog.String("user_id", userID.String()),
			slog.String("competition_id", competitionID.String()),
		)
		err = s.repo.UpdateCompetitionEntry(ctx, db, entry, f.columns)
	}
	if err != nil {
		return competitionResult{}, fmt.Errorf("failed to write competition participation: %w", err)
	}
	return results.SuccessResult[*participationdb.UserCompetition, error](entry), nil
}

// UnmarkCompetition deletes the user's row for a competition.
func (s *ParticipationService) UnmarkCompetition(ctx context.Context, userID, competitionID uuid.UUID) error {
	_, err := operation.Unwrap(operation.Run(s.runner, ctx, "UnmarkCompetition", competitionID.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
			return deleteResult(s.repo.DeleteCompetitionEntry(ctx, db, userID, competitionID))
		}))
	if err != nil {
		return err
	}
	s.publishChange(ctx, participationdomain.ParticipationChangedPayload{
		UserID:     userID,
		TargetKind: participationdomain.TargetCompetition,
		TargetID:   competitionID,
		Change:     participationdomain.ChangeUnmarked,
	})
	return nil
}

// GetUserCompetitions lists the user's competition rows.
func (s *ParticipationService) GetUserCompetitions(ctx context.Context, userID uuid.UUID) ([]*participationdb.UserCompetition, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetUserCompetitions", userID.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*participationdb.UserCompetition, error], error) {
			entries, err := s.repo.ListCompetitionEntries(ctx, db, userID)
			if err != nil {
				return results.OperationResult[[]*participationdb.UserCompetition, error]{}, err
			}
			if entries == nil {
				entries = []*participationdb.UserCompetition{}
			}
			return results.SuccessResult[[]*participationdb.UserCompetition, error](entries), nil
		}))
}

// MarkEdition sets the user's status for an edition.
func (s *ParticipationService) MarkEdition(ctx context.Context, userID, editionID uuid.UUID, status string) (*participationdb.UserEdition, error) {
	entry, err := operation.Unwrap(operation.Run(s.runner, ctx, "MarkEdition", editionID.String(),
		func(ctx context.Context, db bun.IDB) (editionResult, error) {
			parsed, err := participationdomain.ParseStatus(status)
			if err != nil {
				return results.FailureResult[*participationdb.UserEdition, error](err), nil
			}
			fields := ledgerFields{Status: parsed}
			fields.set(participationdb.ColStatus)
			return s.writeEdition(ctx, db, userID, editionID, fields)
		}))
	if err != nil {
		return nil, err
	}
	s.publishChange(ctx, participationdomain.ParticipationChangedPayload{
		UserID:     userID,
		TargetKind: participationdomain.TargetEdition,
		TargetID:   editionID,
		Change:     participationdomain.ChangeMarked,
		Status:     entry.Status,
	})
	return entry, nil
}

// AddEditionResult records a finished edition, including bib and category.
func (s *ParticipationService) AddEditionResult(ctx context.Context, userID, editionID uuid.UUID, input ResultInput) (*participationdb.UserEdition, error) {
	entry, err := operation.Unwrap(operation.Run(s.runner, ctx, "AddEditionResult", editionID.String(),
		func(ctx context.Context, db bun.IDB) (editionResult, error) {
			fields, err := s.resultFields(ctx, input, true)
			if err != nil {
				return results.FailureResult[*participationdb.UserEdition, error](err), nil
			}
			return s.writeEdition(ctx, db, userID, editionID, fields)
		}))
	if err != nil {
		return nil, err
	}
	s.publishChange(ctx, participationdomain.ParticipationChangedPayload{
		UserID:     userID,
		TargetKind: participationdomain.TargetEdition,
		TargetID:   editionID,
		Change:     participationdomain.ChangeResult,
		Status:     entry.Status,
	})
	return entry, nil
}

func (s *ParticipationService) writeEdition(ctx context.Context, db bun.IDB, userID, editionID uuid.UUID, f ledgerFields) (editionResult, error) {
	exists, err := s.catalog.EditionExists(ctx, db, editionID)
	if err != nil {
		return editionResult{}, fmt.Errorf("failed to look up edition: %w", err)
	}
	if !exists {
		return results.FailureResult[*participationdb.UserEdition, error](ErrEditionNotFound), nil
	}

	entry := &participationdb.UserEdition{
		UserID:            userID,
		EditionID:         editionID,
		Status:            f.Status,
		FinishTime:        f.FinishTime,
		FinishTimeSeconds: f.FinishTimeSeconds,
		Position:          f.Position,
		CategoryPosition:  f.CategoryPosition,
		BibNumber:         f.BibNumber,
		CategoryType:      f.CategoryType,
		CategoryName:      f.CategoryName,
		Notes:             f.Notes,
		PersonalRating:    f.PersonalRating,
		CompletedAt:       f.CompletedAt,
	}

	err = s.repo.UpsertEditionEntry(ctx, db, entry, f.columns)
	if errors.Is(err, participationdb.ErrDuplicate) {
		s.logger.InfoContext(ctx, "participation insert raced, retrying as update",
			slog.String("user_id", userID.String()),
			slog.String("edition_id", editionID.String()),
		)
		err = s.repo.UpdateEditionEntry(ctx, db, entry, f.columns)
	}
	if err != nil {
		return editionResult{}, fmt.Errorf("failed to write edition participation: %w", err)
	}
	return results.SuccessResult[*participationdb.UserEdition, error](entry), nil
}

// UnmarkEdition deletes the user's row for an edition.
func (s *ParticipationService) UnmarkEdition(ctx context.Context, userID, editionID uuid.UUID) error {
	_, err := operation.Unwrap(operation.Run(s.runner, ctx, "UnmarkEdition", editionID.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
			return deleteResult(s.repo.DeleteEditionEntry(ctx, db, userID, editionID))
		}))
	if err != nil {
		return err
	}
	s.publishChange(ctx, participationdomain.ParticipationChangedPayload{
		UserID:     userID,
		TargetKind: participationdomain.TargetEdition,
		TargetID:   editionID,
		Change:     participationdomain.ChangeUnmarked,
	})
	return nil
}

// GetUserEditions lists the user's edition rows.
func (s *ParticipationService) GetUserEditions(ctx context.Context, userID uuid.UUID) ([]*participationdb.UserEdition, error) {
	return operation.Unwrap(operation.Run(s.runner, ctx, "GetUserEditions", userID.String(),
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*participationdb.UserEdition, error], error) {
			entries, err := s.repo.ListEditionEntries(ctx, db, userID)
			if err != nil {
				return results.OperationResult[[]*participationdb.UserEdition, error]{}, err
			}
			if entries == nil {
				entries = []*participationdb.UserEdition{}
			}
			return results.SuccessResult[[]*participationdb.UserEdition, error](entries), nil
		}))
}

func deleteResult(err error) (results.OperationResult[struct{}, error], error) {
	if err != nil {
		if errors.Is(err, participationdb.ErrNotFound) {
			return results.FailureResult[struct{}, error](ErrParticipationNotFound), nil
		}
		return results.OperationResult[struct{}, error]{}, fmt.Errorf("failed to delete participation: %w", err)
	}
	return results.SuccessResult[struct{}, error](struct{}{}), nil
}

package participationhandlers

import (
	"context"

	"github.com/google/uuid"
	participationservice "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/application"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	participationdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/repositories"
)

// FakeParticipationService is a programmable fake for
// participationservice.Service.
type FakeParticipationService struct {
	MarkCompetitionFunc      func(ctx context.Context, userID, competitionID uuid.UUID, status string) (*participationdb.UserCompetition, error)
	AddCompetitionResultFunc func(ctx context.Context, userID, competitionID uuid.UUID, input participationservice.ResultInput) (*participationdb.UserCompetition, error)
	UnmarkCompetitionFunc    func(ctx context.Context, userID, competitionID uuid.UUID) error
	GetUserCompetitionsFunc  func(ctx context.Context, userID uuid.UUID) ([]*participationdb.UserCompetition, error)
	MarkEditionFunc          func(ctx context.Context, userID, editionID uuid.UUID, status string) (*participationdb.UserEdition, error)
	AddEditionResultFunc     func(ctx context.Context, userID, editionID uuid.UUID, input participationservice.ResultInput) (*participationdb.UserEdition, error)
	UnmarkEditionFunc        func(ctx context.Context, userID, editionID uuid.UUID) error
	GetUserEditionsFunc      func(ctx context.Context, userID uuid.UUID) ([]*participationdb.UserEdition, error)
	GetUserStatsFunc         func(ctx context.Context, userID uuid.UUID) (participationdomain.Stats, error)
	GetUserEditionStatsFunc  func(ctx context.Context, userID uuid.UUID) (participationdomain.Stats, error)
	GetGlobalRankingFunc     func(ctx context.Context, metric string, limit int) ([]participationservice.RankingEntryView, error)
}

func (f *FakeParticipationService) MarkCompetition(ctx context.Context, userID, competitionID uuid.UUID, status string) (*participationdb.UserCompetition, error) {
	if f.MarkCompetitionFunc != nil {
		return f.MarkCompetitionFunc(ctx, userID, competitionID, status)
	}
	return nil, participationservice.ErrCompetitionNotFound
}

func (f *FakeParticipationService) AddCompetitionResult(ctx context.Context, userID, competitionID uuid.UUID, input participationservice.ResultInput) (*participationdb.UserCompetition, error) {
	if f.AddCompetitionResultFunc != nil {
		return f.AddCompetitionResultFunc(ctx, userID, competitionID, input)
	}
	return nil, participationservice.ErrCompetitionNotFound
}

func (f *FakeParticipationService) UnmarkCompetition(ctx context.Context, userID, competitionID uuid.UUID) error {
	if f.UnmarkCompetitionFunc != nil {
		return f.UnmarkCompetitionFunc(ctx, userID, competitionID)
	}
	return participationservice.ErrParticipationNotFound
}

func (f *FakeParticipationService) GetUserCompetitions(ctx context.Context, userID uuid.UUID) ([]*participationdb.UserCompetition, error) {
	if f.GetUserCompetitionsFunc != nil {
		return f.GetUserCompetitionsFunc(ctx, userID)
	}
	return []*participationdb.UserCompetition{}, nil
}

func (f *FakeParticipationService) MarkEdition(ctx context.Context, userID, editionID uuid.UUID, status string) (*participationdb.UserEdition, error) {
	if f.MarkEditionFunc != nil {
		return f.MarkEditionFunc(ctx, userID, editionID, status)
	}
	return nil, participationservice.ErrEditionNotFound
}

func (f *FakeParticipationService) AddEditionResult(ctx context.Context, userID, editionID uuid.UUID, input participationservice.ResultInput) (*participationdb.UserEdition, error) {
	if f.AddEditionResultFunc != nil {
		return f.AddEditionResultFunc(ctx, userID, editionID, input)
	}
	return nil, participationservice.ErrEditionNotFound
}

func (f *FakeParticipationService) UnmarkEdition(ctx context.Context, userID, editionID uuid.UUID) error {
	if f.UnmarkEditionFunc != nil {
		return f.UnmarkEditionFunc(ctx, userID, editionID)
	}
	return participationservice.ErrParticipationNotFound
}

func (f *FakeParticipationService) GetUserEditions(ctx context.Context, userID uuid.UUID) ([]*participationdb.UserEdition, error) {
	if f.GetUserEditionsFunc != nil {
		return f.GetUserEditionsFunc(ctx, userID)
	}
	return []*participationdb.UserEdition{}, nil
}

func (f *FakeParticipationService) GetUserStats(ctx context.Context, userID uuid.UUID) (participationdomain.Stats, error) {
	if f.GetUserStatsFunc != nil {
		return f.GetUserStatsFunc(ctx, userID)
	}
	return participationdomain.Stats{}, nil
}

func (f *FakeParticipationService) GetUserEditionStats(ctx context.Context, userID uuid.UUID) (participationdomain.Stats, error) {
	if f.GetUserEditionStatsFunc != nil {
		return f.GetUserEditionStatsFunc(ctx, userID)
	}
	return participationdomain.Stats{}, nil
}

func (f *FakeParticipationService) GetGlobalRanking(ctx context.Context, metric string, limit int) ([]participationservice.RankingEntryView, error) {
	if f.GetGlobalRankingFunc != nil {
		return f.GetGlobalRankingFunc(ctx, metric, limit)
	}
	return []participationservice.RankingEntryView{}, nil
}

var _ participationservice.Service = (*FakeParticipationService)(nil)

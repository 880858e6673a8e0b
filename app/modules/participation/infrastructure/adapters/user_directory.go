package adapters

import (
	"context"

	"github.com/google/uuid"
	participationservice "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/application"
	userdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/user/infrastructure/repositories"
)

// UserDirectoryAdapter adapts the user repository to the participation
// service UserDirectory port.
type UserDirectoryAdapter struct {
	userDB userdb.Repository
}

func NewUserDirectoryAdapter(repo userdb.Repository) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{userDB: repo}
}

func (a *UserDirectoryAdapter) GetUserSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]participationservice.UserSummary, error) {
	users, err := a.userDB.GetUsersByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}

	summaries := make(map[uuid.UUID]participationservice.UserSummary, len(users))
	for _, u := range users {
		summaries[u.ID] = participationservice.UserSummary{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Avatar:    u.Avatar,
			Country:   u.Country,
		}
	}
	return summaries, nil
}

package participationservice

import "github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"

var (
	ErrCompetitionNotFound   = apperrors.NotFound("competition not found")
	ErrEditionNotFound       = apperrors.NotFound("edition not found")
	ErrParticipationNotFound = apperrors.NotFound("participation not found")
)

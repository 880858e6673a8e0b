package catalogservice

import (
	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
)

var (
	ErrEventNotFound       = apperrors.NotFound("event not found")
	ErrCompetitionNotFound = apperrors.NotFound("competition not found")
	ErrEditionNotFound     = apperrors.NotFound("edition not found")

	// ErrYearConflict is reported for the whole batch when any requested year
	// is already taken.
	ErrYearConflict = catalogdomain.ErrYearTaken
)

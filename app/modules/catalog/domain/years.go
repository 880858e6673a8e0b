package catalogdomain

import (
	"fmt"
	"slices"

	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
)

const (
	MinEditionYear = 1900
	MaxEditionYear = 2200
)

var (
	ErrNoYears     = apperrors.Validation("at least one year is required")
	ErrInvalidYear = apperrors.Validation("invalid edition year")
	ErrYearTaken   = apperrors.Conflict("edition year already exists")
)

// EditionSlug derives the slug of a competition's edition for year.
func EditionSlug(competitionSlug string, year int) string {
	return fmt.Sprintf("%s-%d", competitionSlug, year)
}

// ValidateYear checks a single year is in the accepted range.
func ValidateYear(year int) error {
	if year < MinEditionYear || year > MaxEditionYear {
		return apperrors.Wrap(ErrInvalidYear, "year %d is outside %d-%d", year, MinEditionYear, MaxEditionYear)
	}
	return nil
}

// ValidateBulkYears checks a bulk request against the years that already
// exist. Malformed lists are validation errors; any year that collides with
// an existing edition or repeats inside the request is a conflict for the
// whole batch.
func ValidateBulkYears(requested, existing []int) error {
	if len(requested) == 0 {
		return ErrNoYears
	}
	for _, y := range requested {
		if err := ValidateYear(y); err != nil {
			return err
		}
	}

	seen := make(map[int]struct{}, len(requested))
	var duplicates []int
	for _, y := range requested {
		if _, dup := seen[y]; dup && !slices.Contains(duplicates, y) {
			duplicates = append(duplicates, y)
		}
		seen[y] = struct{}{}
	}
	if len(duplicates) > 0 {
		return apperrors.Wrap(ErrYearTaken, "years %v are repeated in the request", duplicates)
	}

	var taken []int
	for _, y := range existing {
		if _, ok := seen[y]; ok {
			taken = append(taken, y)
		}
	}
	if len(taken) > 0 {
		slices.Sort(taken)
		return apperrors.Wrap(ErrYearTaken, "editions already exist for years %v", taken)
	}
	return nil
}

// SortYearsDesc returns the distinct years in strictly descending order.
func SortYearsDesc(years []int) []int {
	out := slices.Clone(years)
	slices.Sort(out)
	out = slices.Compact(out)
	slices.Reverse(out)
	if out == nil {
		return []int{}
	}
	return out
}

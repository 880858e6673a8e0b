package catalogdomain

// Level names the hierarchy level a resolved value came from.
type Level string

const (
	LevelEdition     Level = "edition"
	LevelCompetition Level = "competition"
	LevelEvent       Level = "event"
	LevelNone        Level = "none"
)

// Resolved is an effective value plus where it came from. Value is nil
// when no level defines the field.
type Resolved[T any] struct {
	Value  *T
	Source Level
}

// OrZero returns the value, or the zero value of T when nothing defined it.
func (r Resolved[T]) OrZero() T {
	if r.Value == nil {
		var zero T
		return zero
	}
	return *r.Value
}

// IsDefaulted reports whether every level was empty.
func (r Resolved[T]) IsDefaulted() bool {
	return r.Source == LevelNone
}

// ResolvedEdition is the read-only result of resolution.
type ResolvedEdition struct {
	Edition         EditionFields
	Competition     CompetitionFields
	Event           EventFields
	Distance        Resolved[float64]
	Elevation       Resolved[int]
	MaxParticipants Resolved[int]
	City            Resolved[string]
}

// Resolve computes the effective inheritable attributes of an edition.
//
// The fallback chains are field specific: numeric attributes fall back to the
// competition base values and never to the event, while city falls back to
// the event and never to the competition. An empty edition city counts as
// unset. Inputs are copied, never modified.
func Resolve(edition EditionFields, competition CompetitionFields, event EventFields) ResolvedEdition {
	return ResolvedEdition{
		Edition:         edition,
		Competition:     competition,
		Event:           event,
		Distance:        firstSet(pick(edition.Distance, LevelEdition), pick(competition.BaseDistance, LevelCompetition)),
		Elevation:       firstSet(pick(edition.Elevation, LevelEdition), pick(competition.BaseElevation, LevelCompetition)),
		MaxParticipants: firstSet(pick(edition.MaxParticipants, LevelEdition), pick(competition.BaseMaxParticipants, LevelCompetition)),
		City:            firstSet(pickString(edition.City, LevelEdition), pickString(stringPtr(event.City), LevelEvent)),
	}
}

// ResolveNormalized resolves a record produced by Normalize.
func ResolveNormalized(n NormalizedEdition) ResolvedEdition {
	return Resolve(n.Edition, n.Competition, n.Event)
}

// DefaultedFields lists the resolved fields that fell through to the zero
// default.
func (r ResolvedEdition) DefaultedFields() []string {
	var fields []string
	if r.Distance.IsDefaulted() {
		fields = append(fields, "distance")
	}
	if r.Elevation.IsDefaulted() {
		fields = append(fields, "elevation")
	}
	if r.MaxParticipants.IsDefaulted() {
		fields = append(fields, "maxParticipants")
	}
	if r.City.IsDefaulted() {
		fields = append(fields, "city")
	}
	return fields
}

func pick[T any](v *T, level Level) Resolved[T] {
	if v == nil {
		return Resolved[T]{Source: LevelNone}
	}
	value := *v
	return Resolved[T]{Value: &value, Source: level}
}

func pickString(v *string, level Level) Resolved[string] {
	if v == nil || *v == "" {
		return Resolved[string]{Source: LevelNone}
	}
	return pick(v, level)
}

func firstSet[T any](candidates ...Resolved[T]) Resolved[T] {
	for _, c := range candidates {
		if c.Value != nil {
			return c
		}
	}
	return Resolved[T]{Source: LevelNone}
}

func stringPtr(s string) *string {
	return &s
}

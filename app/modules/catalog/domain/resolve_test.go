package catalogdomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestResolveDistance(t *testing.T) {
	tests := []struct {
		name        string
		edition     *float64
		base        *float64
		wantValue   float64
		wantSource  Level
		wantDefault bool
	}{
		{name: "edition override wins", edition: ptr(145.0), base: ptr(171.0), wantValue: 145, wantSource: LevelEdition},
		{name: "falls back to competition base", edition: nil, base: ptr(171.0), wantValue: 171, wantSource: LevelCompetition},
		{name: "explicit zero on edition is kept", edition: ptr(0.0), base: ptr(171.0), wantValue: 0, wantSource: LevelEdition},
		{name: "nothing set defaults to zero", wantValue: 0, wantSource: LevelNone, wantDefault: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(
				EditionFields{Distance: tt.edition},
				CompetitionFields{BaseDistance: tt.base},
				EventFields{},
			)

			assert.Equal(t, tt.wantValue, got.Distance.OrZero())
			assert.Equal(t, tt.wantSource, got.Distance.Source)
			assert.Equal(t, tt.wantDefault, got.Distance.IsDefaulted())
		})
	}
}

func TestResolveNumericFieldsNeverUseEvent(t *testing.T) {
	got := Resolve(
		EditionFields{},
		CompetitionFields{BaseElevation: ptr(10000), BaseMaxParticipants: ptr(2300)},
		EventFields{City: "Chamonix"},
	)

	assert.Equal(t, 10000, got.Elevation.OrZero())
	assert.Equal(t, LevelCompetition, got.Elevation.Source)
	assert.Equal(t, 2300, got.MaxParticipants.OrZero())
	assert.Equal(t, LevelCompetition, got.MaxParticipants.Source)

	overridden := Resolve(
		EditionFields{Elevation: ptr(9800), MaxParticipants: ptr(2500)},
		CompetitionFields{BaseElevation: ptr(10000), BaseMaxParticipants: ptr(2300)},
		EventFields{},
	)
	assert.Equal(t, 9800, overridden.Elevation.OrZero())
	assert.Equal(t, 2500, overridden.MaxParticipants.OrZero())
	assert.Equal(t, LevelEdition, overridden.MaxParticipants.Source)
}

func TestResolveCity(t *testing.T) {
	tests := []struct {
		name       string
		edition    *string
		eventCity  string
		wantCity   string
		wantSource Level
	}{
		{name: "edition city wins", edition: ptr("Courmayeur"), eventCity: "Chamonix", wantCity: "Courmayeur", wantSource: LevelEdition},
		{name: "falls back to event city", edition: nil, eventCity: "Chamonix", wantCity: "Chamonix", wantSource: LevelEvent},
		{name: "empty edition city counts as unset", edition: ptr(""), eventCity: "Chamonix", wantCity: "Chamonix", wantSource: LevelEvent},
		{name: "nothing set", wantCity: "", wantSource: LevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(EditionFields{City: tt.edition}, CompetitionFields{Name: "UTMB"}, EventFields{City: tt.eventCity})
			assert.Equal(t, tt.wantCity, got.City.OrZero())
			assert.Equal(t, tt.wantSource, got.City.Source)
		})
	}
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	edition := EditionFields{Year: 2024, Distance: ptr(145.0), City: ptr("Courmayeur")}
	competition := CompetitionFields{Name: "CCC", BaseDistance: ptr(101.0)}
	event := EventFields{Name: "UTMB Mont-Blanc", City: "Chamonix"}

	editionBefore, competitionBefore, eventBefore := edition, competition, event
	distanceBefore := *edition.Distance

	got := Resolve(edition, competition, event)
	*got.Distance.Value = 999

	assert.Empty(t, cmp.Diff(editionBefore, edition))
	assert.Empty(t, cmp.Diff(competitionBefore, competition))
	assert.Empty(t, cmp.Diff(eventBefore, event))
	assert.Equal(t, distanceBefore, *edition.Distance)
}

func TestResolveDefaultedFields(t *testing.T) {
	got := Resolve(EditionFields{Distance: ptr(50.0)}, CompetitionFields{}, EventFields{})
	assert.Equal(t, []string{"elevation", "maxParticipants", "city"}, got.DefaultedFields())

	full := Resolve(
		EditionFields{Distance: ptr(50.0), Elevation: ptr(3000), MaxParticipants: ptr(500), City: ptr("Zegama")},
		CompetitionFields{},
		EventFields{},
	)
	assert.Empty(t, full.DefaultedFields())
}

func TestResolveNeverPanics(t *testing.T) {
	inputs := []map[string]any{
		nil,
		{},
		{"competition": nil},
		{"competition": "not an object"},
		{"competition": map[string]any{"event": 42}},
		{"distance": "abc", "elevation": []int{1}, "city": 12},
		{"competitionBaseDistance": "171", "eventCity": nil},
	}

	for _, raw := range inputs {
		assert.NotPanics(t, func() {
			got := ResolveNormalized(Normalize(raw))
			_ = got.Distance.OrZero()
			_ = got.City.OrZero()
		})
	}
}

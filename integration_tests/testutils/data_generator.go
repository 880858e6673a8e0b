//go:build integration

package testutils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	catalogdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/domain"
	catalogdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories"
	userdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/user/infrastructure/repositories"
)

// TestDataGenerator creates catalog and user rows with fake values.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator. Passing a seed makes the data
// reproducible.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s)}
}

func (g *TestDataGenerator) slug(name string) string {
	base := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return fmt.Sprintf("%s-%s", base, g.faker.LetterN(6))
}

// GenerateEvent returns an unsaved event.
func (g *TestDataGenerator) GenerateEvent() *catalogdb.Event {
	name := g.faker.City() + " Trail Festival"
	return &catalogdb.Event{
		ID:      uuid.New(),
		Name:    name,
		Slug:    g.slug(name),
		City:    g.faker.City(),
		Country: g.faker.CountryAbr(),
	}
}

// GenerateCompetition returns an unsaved competition with base attributes.
func (g *TestDataGenerator) GenerateCompetition(eventID uuid.UUID) *catalogdb.Competition {
	name := g.faker.AdjectiveDescriptive() + " " + g.faker.Noun()
	distance := float64(g.faker.IntRange(10, 170))
	elevation := g.faker.IntRange(300, 10000)
	maxParticipants := g.faker.IntRange(100, 2500)
	return &catalogdb.Competition{
		ID:                  uuid.New(),
		EventID:             eventID,
		Name:                name,
		Slug:                g.slug(name),
		Type:                catalogdomain.CompetitionTrail,
		BaseDistance:        &distance,
		BaseElevation:       &elevation,
		BaseMaxParticipants: &maxParticipants,
		Status:              "ACTIVE",
	}
}

// GenerateEdition returns an unsaved edition without overrides.
func (g *TestDataGenerator) GenerateEdition(competitionID uuid.UUID, year int) *catalogdb.Edition {
	return &catalogdb.Edition{
		ID:                 uuid.New(),
		CompetitionID:      competitionID,
		Year:               year,
		Slug:               g.slug(fmt.Sprintf("edition %d", year)),
		Status:             catalogdomain.StatusUpcoming,
		RegistrationStatus: catalogdomain.RegistrationComingSoon,
	}
}

// GenerateUser returns an unsaved user.
func (g *TestDataGenerator) GenerateUser() *userdb.User {
	first, last := g.faker.FirstName(), g.faker.LastName()
	return &userdb.User{
		ID:        uuid.New(),
		Username:  g.faker.Username() + g.faker.LetterN(4),
		FirstName: &first,
		LastName:  &last,
	}
}

// Catalog is one inserted event with a competition.
type Catalog struct {
	Event       *catalogdb.Event
	Competition *catalogdb.Competition
}

// InsertCatalog stores a generated event and competition.
func (g *TestDataGenerator) InsertCatalog(ctx context.Context, db bun.IDB) (Catalog, error) {
	event := g.GenerateEvent()
	if _, err := db.NewInsert().Model(event).Exec(ctx); err != nil {
		return Catalog{}, fmt.Errorf("insert event: %w", err)
	}
	competition := g.GenerateCompetition(event.ID)
	if _, err := db.NewInsert().Model(competition).Exec(ctx); err != nil {
		return Catalog{}, fmt.Errorf("insert competition: %w", err)
	}
	return Catalog{Event: event, Competition: competition}, nil
}

// InsertUsers stores n generated users.
func (g *TestDataGenerator) InsertUsers(ctx context.Context, db bun.IDB, n int) ([]*userdb.User, error) {
	users := make([]*userdb.User, 0, n)
	for range n {
		users = append(users, g.GenerateUser())
	}
	if _, err := db.NewInsert().Model(&users).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert users: %w", err)
	}
	return users, nil
}

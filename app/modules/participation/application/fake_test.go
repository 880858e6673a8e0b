package participationservice

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	participationdomain "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/domain"
	participationdb "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Ledger Repo
// ------------------------

type FakeLedgerRepo struct {
	trace []string

	UpsertCompetitionEntryFunc func(ctx context.Context, db bun.IDB, entry *participationdb.UserCompetition, columns []string) error
	UpdateCompetitionEntryFunc func(ctx context.Context, db bun.IDB, entry *participationdb.UserCompetition, columns []string) error
	DeleteCompetitionEntryFunc func(ctx context.Context, db bun.IDB, userID, competitionID uuid.UUID) error
	ListCompetitionEntriesFunc func(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*participationdb.UserCompetition, error)
	UpsertEditionEntryFunc     func(ctx context.Context, db bun.IDB, entry *participationdb.UserEdition, columns []string) error
	UpdateEditionEntryFunc     func(ctx context.Context, db bun.IDB, entry *participationdb.UserEdition, columns []string) error
	DeleteEditionEntryFunc     func(ctx context.Context, db bun.IDB, userID, editionID uuid.UUID) error
	ListEditionEntriesFunc     func(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*participationdb.UserEdition, error)
	CountCompletedByUserFunc   func(ctx context.Context, db bun.IDB, limit int) ([]participationdomain.UserCount, error)
}

func NewFakeLedgerRepo() *FakeLedgerRepo {
	return &FakeLedgerRepo{trace: []string{}}
}

func (f *FakeLedgerRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLedgerRepo) UpsertCompetitionEntry(ctx context.Context, db bun.IDB, entry *participationdb.UserCompetition, columns []string) error {
	f.record("UpsertCompetitionEntry")
	if f.UpsertCompetitionEntryFunc != nil {
		return f.UpsertCompetitionEntryFunc(ctx, db, entry, columns)
	}
	return nil
}

func (f *FakeLedgerRepo) UpdateCompetitionEntry(ctx context.Context, db bun.IDB, entry *participationdb.UserCompetition, columns []string) error {
	f.record("UpdateCompetitionEntry")
	if f.UpdateCompetitionEntryFunc != nil {
		return f.UpdateCompetitionEntryFunc(ctx, db, entry, columns)
	}
	return nil
}

func (f *FakeLedgerRepo) DeleteCompetitionEntry(ctx context.Context, db bun.IDB, userID, competitionID uuid.UUID) error {
	f.record("DeleteCompetitionEntry")
	if f.DeleteCompetitionEntryFunc != nil {
		return f.DeleteCompetitionEntryFunc(ctx, db, userID, competitionID)
	}
	return nil
}

func (f *FakeLedgerRepo) ListCompetitionEntries(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*participationdb.UserCompetition, error) {
	f.record("ListCompetitionEntries")
	if f.ListCompetitionEntriesFunc != nil {
		return f.ListCompetitionEntriesFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeLedgerRepo) UpsertEditionEntry(ctx context.Context, db bun.IDB, entry *participationdb.UserEdition, columns []string) error {
	f.record("UpsertEditionEntry")
	if f.UpsertEditionEntryFunc != nil {
		return f.UpsertEditionEntryFunc(ctx, db, entry, columns)
	}
	return nil
}

func (f *FakeLedgerRepo) UpdateEditionEntry(ctx context.Context, db bun.IDB, entry *participationdb.UserEdition, columns []string) error {
	f.record("UpdateEditionEntry")
	if f.UpdateEditionEntryFunc != nil {
		return f.UpdateEditionEntryFunc(ctx, db, entry, columns)
	}
	return nil
}

func (f *FakeLedgerRepo) DeleteEditionEntry(ctx context.Context, db bun.IDB, userID, editionID uuid.UUID) error {
	f.record("DeleteEditionEntry")
	if f.DeleteEditionEntryFunc != nil {
		return f.DeleteEditionEntryFunc(ctx, db, userID, editionID)
	}
	return nil
}

func (f *FakeLedgerRepo) ListEditionEntries(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*participationdb.UserEdition, error) {
	f.record("ListEditionEntries")
	if f.ListEditionEntriesFunc != nil {
		return f.ListEditionEntriesFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeLedgerRepo) CountCompletedByUser(ctx context.Context, db bun.IDB, limit int) ([]participationdomain.UserCount, error) {
	f.record("CountCompletedByUser")
	if f.CountCompletedByUserFunc != nil {
		return f.CountCompletedByUserFunc(ctx, db, limit)
	}
	return nil, nil
}

func (f *FakeLedgerRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ participationdb.Repository = (*FakeLedgerRepo)(nil)

// ------------------------
// Collaborator fakes
// ------------------------

// fakeCatalog reports every target as existing unless listed as missing.
type fakeCatalog struct {
	missing map[uuid.UUID]bool
	err     error
}

func (f *fakeCatalog) CompetitionExists(_ context.Context, _ bun.IDB, id uuid.UUID) (bool, error) {
	return !f.missing[id], f.err
}

func (f *fakeCatalog) EditionExists(_ context.Context, _ bun.IDB, id uuid.UUID) (bool, error) {
	return !f.missing[id], f.err
}

type fakeUsers struct {
	users map[uuid.UUID]UserSummary
	calls int
}

func (f *fakeUsers) GetUserSummaries(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]UserSummary, error) {
	f.calls++
	out := map[uuid.UUID]UserSummary{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// memoryCache stores pages as values; Get copies into dest.
type memoryCache struct {
	pages      map[string][]RankingEntryView
	sets       int
	err        error
	generation int64
	// onGeneration runs after the generation is read, standing in for a
	// concurrent invalidation.
	onGeneration func(c *memoryCache)
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: map[string][]RankingEntryView{}}
}

func cacheKey(metric string, limit int) string {
	return metric + ":" + strconv.Itoa(limit)
}

func (c *memoryCache) Get(_ context.Context, metric string, limit int, dest any) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	page, ok := c.pages[cacheKey(metric, limit)]
	if !ok {
		return false, nil
	}
	*(dest.(*[]RankingEntryView)) = page
	return true, nil
}

func (c *memoryCache) Generation(context.Context) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	gen := c.generation
	if c.onGeneration != nil {
		c.onGeneration(c)
	}
	return gen, nil
}

func (c *memoryCache) Set(_ context.Context, metric string, limit int, generation int64, value any) (bool, error) {
	if generation != c.generation {
		return false, nil
	}
	c.sets++
	c.pages[cacheKey(metric, limit)] = value.([]RankingEntryView)
	return true, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
	err      error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{messages: map[string][]*message.Message{}}
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages[topic] = append(p.messages[topic], msgs...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messages[topic]
}

type recordingMetrics struct {
	mu                sync.Mutex
	timeParseFailures int
}

func (m *recordingMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (m *recordingMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (m *recordingMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (m *recordingMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (m *recordingMetrics) RecordResolutionDefault(context.Context, string)                        {}

func (m *recordingMetrics) RecordTimeParseFailure(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeParseFailures++
}

package stats_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/internal/platform/apperr"
	"github.com/marcodallan/biblio/internal/stats"
)

type fakeRepository struct {
	totals   map[string]int64
	top      []stats.TopBook
	countErr error

	overdueCutoff time.Time
	topLimit      int
}

func (f *fakeRepository) count(name string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.totals[name], nil
}

func (f *fakeRepository) CountBooks(_ context.Context) (int64, error) {
	return f.count("books")
}

func (f *fakeRepository) CountAvailableBooks(_ context.Context) (int64, error) {
	return f.count("available")
}

func (f *fakeRepository) CountActiveLoans(_ context.Context) (int64, error) {
	return f.count("active_loans")
}

func (f *fakeRepository) CountOverdueLoans(_ context.Context, now time.Time) (int64, error) {
	f.overdueCutoff = now
	return f.count("overdue")
}

func (f *fakeRepository) CountActiveMembers(_ context.Context) (int64, error) {
	return f.count("members")
}

func (f *fakeRepository) TopBorrowedBooks(_ context.Context, limit int) ([]stats.TopBook, error) {
	f.topLimit = limit
	if f.countErr != nil {
		return nil, f.countErr
	}
	return f.top, nil
}

type fakeCache struct {
	stored *stats.Stats
	ttl    time.Duration
	getErr error
	setErr error
	hits   int
	writes int
}

func (f *fakeCache) Get(_ context.Context) (*stats.Stats, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored == nil {
		return nil, apperr.NotFound("Statistics snapshot")
	}
	f.hits++
	return f.stored, nil
}

func (f *fakeCache) Set(_ context.Context, s *stats.Stats, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.stored = s
	f.ttl = ttl
	f.writes++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func TestSummary_ComputesFromStore(t *testing.T) {
	top := []stats.TopBook{{BookID: primitive.NewObjectID(), Title: "1984", LoanCount: 12}}
	repo := &fakeRepository{
		totals: map[string]int64{"books": 5, "available": 3, "active_loans": 4, "overdue": 1, "members": 7},
		top:    top,
	}
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	service := stats.NewService(repo, testLogger(), stats.WithClock(func() time.Time { return now }))

	summary, err := service.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.TotalBooks)
	assert.Equal(t, int64(3), summary.AvailableBooks)
	assert.Equal(t, int64(4), summary.ActiveLoans)
	assert.Equal(t, int64(1), summary.OverdueLoans)
	assert.Equal(t, int64(7), summary.ActiveMembers)
	assert.Equal(t, top, summary.TopBooks)
	assert.Equal(t, now, repo.overdueCutoff)
	assert.Equal(t, 5, repo.topLimit)
}

func TestSummary_CacheHitSkipsStore(t *testing.T) {
	repo := &fakeRepository{countErr: errors.New("store must not be touched")}
	cache := &fakeCache{stored: &stats.Stats{TotalBooks: 42}}
	service := stats.NewService(repo, testLogger(), stats.WithCache(cache, 30*time.Second))

	summary, err := service.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42), summary.TotalBooks)
	assert.Equal(t, 1, cache.hits)
}

func TestSummary_CacheMissFillsCache(t *testing.T) {
	repo := &fakeRepository{totals: map[string]int64{"books": 2}}
	cache := &fakeCache{}
	service := stats.NewService(repo, testLogger(), stats.WithCache(cache, 30*time.Second))

	summary, err := service.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, cache.writes)
	assert.Equal(t, 30*time.Second, cache.ttl)
	assert.Equal(t, summary, cache.stored)
}

func TestSummary_CacheFailureFallsThrough(t *testing.T) {
	repo := &fakeRepository{totals: map[string]int64{"books": 9}}
	cache := &fakeCache{
		getErr: errors.New("connection refused"),
		setErr: errors.New("connection refused"),
	}
	service := stats.NewService(repo, testLogger(), stats.WithCache(cache, time.Second))

	summary, err := service.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(9), summary.TotalBooks)
}

func TestSummary_StoreFailureDegrades(t *testing.T) {
	repo := &fakeRepository{countErr: apperr.StoreError(errors.New("no reachable servers"))}
	service := stats.NewService(repo, testLogger())

	summary, err := service.Summary(context.Background())

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "STORE_ERROR"))
	require.NotNil(t, summary)
	assert.Equal(t, int64(0), summary.TotalBooks)
	assert.Empty(t, summary.TopBooks)
}

func TestSummary_EmptyRankingIsNotNil(t *testing.T) {
	repo := &fakeRepository{totals: map[string]int64{}}
	service := stats.NewService(repo, testLogger())

	summary, err := service.Summary(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, summary.TopBooks)
	assert.Empty(t, summary.TopBooks)
}

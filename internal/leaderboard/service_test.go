package leaderboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	entries []Entry
	calls   int
}

func (r *stubRepo) TopSellers(ctx context.Context, limit int) ([]Entry, error) {
	r.calls++
	return r.entries, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestTopComputesAndCaches(t *testing.T) {
	repo := &stubRepo{entries: []Entry{
		{Rank: 1, UserID: uuid.New(), DisplayName: "Ada", WonDeals: 4, Revenue: 125000.5},
		{Rank: 2, UserID: uuid.New(), DisplayName: "Lin", WonDeals: 2, Revenue: 40000},
	}}
	service := NewService(repo, testRedis(t), discardLogger(), time.Minute)

	board, err := service.Top(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "Ada", board.Entries[0].DisplayName)
	assert.Equal(t, "$125,000.50", board.Entries[0].RevenueLabel)
	assert.False(t, board.GeneratedAt.IsZero())

	again, err := service.Top(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second read should be served from cache")
	assert.Equal(t, board.Entries, again.Entries)
}

func TestTopWithoutRedisStillComputes(t *testing.T) {
	repo := &stubRepo{entries: []Entry{{Rank: 1, UserID: uuid.New(), DisplayName: "Ada", Revenue: 10}}}
	service := NewService(repo, nil, discardLogger(), time.Minute)

	board, err := service.Top(context.Background())
	require.NoError(t, err)
	assert.Len(t, board.Entries, 1)

	_, err = service.Top(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "no cache means every read recomputes")
}

func TestRecomputeRefreshesCache(t *testing.T) {
	repo := &stubRepo{entries: []Entry{{Rank: 1, UserID: uuid.New(), DisplayName: "Ada", Revenue: 10}}}
	service := NewService(repo, testRedis(t), discardLogger(), time.Minute)

	_, err := service.Top(context.Background())
	require.NoError(t, err)

	repo.entries = append(repo.entries, Entry{Rank: 2, UserID: uuid.New(), DisplayName: "Lin", Revenue: 5})
	_, err = service.Recompute(context.Background())
	require.NoError(t, err)

	board, err := service.Top(context.Background())
	require.NoError(t, err)
	assert.Len(t, board.Entries, 2, "Top should see the recomputed board from cache")
	assert.Equal(t, 2, repo.calls)
}

func TestRecomputeFormatsRevenueLabels(t *testing.T) {
	repo := &stubRepo{entries: []Entry{{Rank: 1, UserID: uuid.New(), DisplayName: "Ada", Revenue: 1234567.891}}}
	service := NewService(repo, nil, discardLogger(), time.Minute)

	board, err := service.Recompute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$1,234,567.89", board.Entries[0].RevenueLabel)
}

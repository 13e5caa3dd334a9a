package queue

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

func newTestQueue(t *testing.T) *ForcedQueue {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewForcedQueue(rdb, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScheduleAndPopDue(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	require.NoError(t, q.Schedule(ctx, id, now.Add(-time.Second)))

	got, ok, err := q.PopDue(ctx, now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, got)

	// Claimed entries are gone.
	_, ok, err = q.PopDue(ctx, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPopDueIgnoresFutureEntries(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, q.Schedule(ctx, uuid.New(), now.Add(time.Minute)))

	_, ok, err := q.PopDue(ctx, now)
	require.NoError(t, err)
	assert.False(t, ok)

	depth, err := q.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), depth)
}

func TestRescheduleMovesDueTime(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	require.NoError(t, q.Schedule(ctx, id, now.Add(-time.Second)))
	require.NoError(t, q.Schedule(ctx, id, now.Add(time.Hour)))

	// Only one entry per session, at the latest due time.
	depth, err := q.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), depth)

	_, ok, err := q.PopDue(ctx, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCancel(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	require.NoError(t, q.Schedule(ctx, id, now.Add(-time.Second)))
	require.NoError(t, q.Cancel(ctx, id))

	_, ok, err := q.PopDue(ctx, now)
	require.NoError(t, err)
	assert.False(t, ok)

	// Cancelling an absent entry is fine.
	require.NoError(t, q.Cancel(ctx, uuid.New()))
}

func TestPopDueOldestFirst(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	now := time.Now()

	first := uuid.New()
	second := uuid.New()
	require.NoError(t, q.Schedule(ctx, second, now.Add(-time.Second)))
	require.NoError(t, q.Schedule(ctx, first, now.Add(-time.Minute)))

	got, ok, err := q.PopDue(ctx, now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, got)
}

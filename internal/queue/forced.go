package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// forcedSetKey is the sorted set of pending forced continuations,
// scored by the time they become due.
const forcedSetKey = "forced:due"

// ForcedQueue schedules forced-move continuations. The engine performs
// one forced hop per invocation; the pause between hops is a scheduling
// concern, and this queue is the scheduler's backing store.
type ForcedQueue struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewForcedQueue(rdb *redis.Client, logger *slog.Logger) *ForcedQueue {
	return &ForcedQueue{rdb: rdb, logger: logger}
}

// Schedule records that the session's forced chain continues at the
// given time. Re-scheduling an already pending session moves its due
// time.
func (q *ForcedQueue) Schedule(ctx context.Context, sessionID uuid.UUID, due time.Time) error {
	err := q.rdb.ZAdd(ctx, forcedSetKey, redis.Z{
		Score:  float64(due.UnixMilli()),
		Member: sessionID.String(),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to schedule continuation: %w", err)
	}
	q.logger.Debug("Scheduled forced continuation", "session_id", sessionID, "due", due)
	return nil
}

// PopDue claims one continuation whose due time has passed. The ZRem is
// the claim: when several workers race, only the one that removes the
// member wins.
func (q *ForcedQueue) PopDue(ctx context.Context, now time.Time) (uuid.UUID, bool, error) {
	members, err := q.rdb.ZRangeByScore(ctx, forcedSetKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   fmt.Sprintf("%d", now.UnixMilli()),
		Count: 1,
	}).Result()
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to read due continuations: %w", err)
	}
	if len(members) == 0 {
		return uuid.Nil, false, nil
	}

	removed, err := q.rdb.ZRem(ctx, forcedSetKey, members[0]).Result()
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to claim continuation: %w", err)
	}
	if removed == 0 {
		// Another worker claimed it first.
		return uuid.Nil, false, nil
	}

	id, err := uuid.Parse(members[0])
	if err != nil {
		q.logger.Warn("Dropping malformed continuation entry", "member", members[0])
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// Cancel drops a pending continuation, if any.
func (q *ForcedQueue) Cancel(ctx context.Context, sessionID uuid.UUID) error {
	if err := q.rdb.ZRem(ctx, forcedSetKey, sessionID.String()).Err(); err != nil {
		return fmt.Errorf("failed to cancel continuation: %w", err)
	}
	return nil
}

// Depth returns the number of pending continuations.
func (q *ForcedQueue) Depth(ctx context.Context) (int64, error) {
	n, err := q.rdb.ZCard(ctx, forcedSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue depth: %w", err)
	}
	return n, nil
}

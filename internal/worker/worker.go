package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/internal/queue"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/interp"
	"github.com/jwebster45206/adventure-engine/pkg/session"
)

// pollInterval is how often the worker checks for due continuations
// when the queue is quiet.
const pollInterval = 250 * time.Millisecond

// Worker drains the forced-continuation queue: for each due session it
// re-invokes the interpreter with the synthetic FORCED command, saves
// the session, and re-schedules while the chain continues.
type Worker struct {
	id      string
	queue   *queue.ForcedQueue
	storage storage.Storage
	delay   time.Duration
	log     *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a worker. delay is the pause between hops of a forced
// chain.
func New(q *queue.ForcedQueue, st storage.Storage, delay time.Duration, log *slog.Logger, workerID string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if workerID == "" {
		workerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}

	return &Worker{
		id:      workerID,
		queue:   q,
		storage: st,
		delay:   delay,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins processing continuations until Stop is called.
func (w *Worker) Start() error {
	w.log.Info("Worker starting", "worker_id", w.id)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info("Worker shutting down", "worker_id", w.id)
			return nil
		case <-ticker.C:
			if err := w.processNext(); err != nil {
				w.log.Error("Error processing continuation", "error", err, "worker_id", w.id)
			}
		}
	}
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.log.Info("Worker stop requested", "worker_id", w.id)
	w.cancel()
}

func (w *Worker) processNext() error {
	ctx, cancel := context.WithTimeout(w.ctx, 5*time.Second)
	defer cancel()

	id, ok, err := w.queue.PopDue(ctx, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return w.ProcessContinuation(ctx, id)
}

// ProcessContinuation performs one forced hop for a session. Sessions
// that have expired, finished, or left the forced state are skipped.
func (w *Worker) ProcessContinuation(ctx context.Context, id uuid.UUID) error {
	s, err := w.storage.LoadSession(ctx, id)
	if err != nil {
		return fmt.Errorf("loading session %s: %w", id, err)
	}
	if s == nil {
		w.log.Debug("Continuation for unknown session", "session_id", id, "worker_id", w.id)
		return nil
	}
	if s.Phase() != session.PhaseAwaitingForced {
		w.log.Debug("Session no longer awaiting forced move", "session_id", id, "phase", s.Phase())
		return nil
	}

	result := interp.Interpret(s, "FORCED")

	if err := w.storage.SaveSession(ctx, s); err != nil {
		return fmt.Errorf("saving session %s: %w", id, err)
	}

	w.log.Info("Processed forced continuation",
		"worker_id", w.id,
		"session_id", id,
		"result", result.Kind,
	)

	// The chain continues until a room with no forced exit, or the end
	// of the game.
	if result.Kind == interp.Forced {
		return w.queue.Schedule(ctx, id, time.Now().Add(w.delay))
	}
	return nil
}

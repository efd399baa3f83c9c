package runtime

import (
	"chat-sync/contract"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

var _ contract.IExpiryEngine = (*ExpiryEngine)(nil)

// ExpiryEngine owns the live -> expired transition of status posts.
//
// Visibility is decided by comparing the read time with CreatedAt + TTL, never by
// whether the purge already ran, so reads stay correct under scheduler delay or
// after a restart. The purge itself is idempotent: it reloads the post, recomputes
// the deadline from the stored creation time and treats a missing post as done.
// Scheduled purges run on their own goroutine, never on the scheduler loop.
type ExpiryEngine struct {
	mu            sync.Mutex
	inflight      sync.WaitGroup
	log           *slog.Logger
	store         contract.StatusStore
	scheduler     contract.IScheduler
	ttl           time.Duration
	actionTimeout time.Duration
	newBackOff    func() backoff.BackOff
	pending       map[uuid.UUID]contract.TimerID
	expired       map[uuid.UUID]struct{}
	retries       map[uuid.UUID]backoff.BackOff
}

func NewExpiryEngine(log *slog.Logger, store contract.StatusStore,
	scheduler contract.IScheduler, ttl time.Duration) *ExpiryEngine {
	if ttl <= 0 {
		ttl = chat.DefaultStatusTTL
	}
	return &ExpiryEngine{
		log:           log,
		store:         store,
		scheduler:     scheduler,
		ttl:           ttl,
		actionTimeout: 10 * time.Second,
		newBackOff:    defaultPurgeBackOff,
		pending:       make(map[uuid.UUID]contract.TimerID),
		expired:       make(map[uuid.UUID]struct{}),
		retries:       make(map[uuid.UUID]backoff.BackOff),
	}
}

func defaultPurgeBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 5 * time.Minute
	b.MaxElapsedTime = time.Hour
	b.Reset()
	return b
}

// WithBackOff replaces the retry policy used when a purge fails.
func (e *ExpiryEngine) WithBackOff(newBackOff func() backoff.BackOff) *ExpiryEngine {
	e.newBackOff = newBackOff
	return e
}

func (e *ExpiryEngine) TTL() time.Duration { return e.ttl }

// Track schedules the one-shot purge of post at its expiry boundary.
func (e *ExpiryEngine) Track(post chat.StatusPost) {
	e.schedule(post.ID, post.ExpiryFor(e.ttl))
}

// ListActive returns the posts readable now, newest first.
func (e *ExpiryEngine) ListActive(ctx context.Context) ([]chat.StatusPost, error) {
	posts, err := e.store.ListStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	now := e.scheduler.Now()

	e.mu.Lock()
	active := lo.Filter(posts, func(p chat.StatusPost, _ int) bool {
		_, gone := e.expired[p.ID]
		return !gone && p.VisibleAt(now, e.ttl)
	})
	e.mu.Unlock()

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

// Recover rebuilds every pending purge from the persisted creation times.
// Posts already past their deadline are purged immediately. Failures are
// aggregated; each failed post stays scheduled for retry.
func (e *ExpiryEngine) Recover(ctx context.Context) error {
	posts, err := e.store.ListStatuses(ctx)
	if err != nil {
		return fmt.Errorf("recover statuses: %w", err)
	}

	var result *multierror.Error
	now := e.scheduler.Now()
	scheduled, purged := 0, 0
	for _, post := range posts {
		if post.VisibleAt(now, e.ttl) {
			e.Track(post)
			scheduled++
			continue
		}
		if err := e.purge(ctx, post.ID); err != nil {
			result = multierror.Append(result, err)
			e.retry(post.ID)
			continue
		}
		purged++
	}
	e.log.Info("Status expiry recovered", "scheduled", scheduled, "purged", purged)
	return result.ErrorOrNil()
}

// IsExpired reports whether the engine already marked the post expired.
func (e *ExpiryEngine) IsExpired(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.expired[id]
	return ok
}

// Pending returns the number of posts waiting for their purge.
func (e *ExpiryEngine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *ExpiryEngine) schedule(id uuid.UUID, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if timerID, ok := e.pending[id]; ok {
		e.scheduler.Cancel(timerID)
	}
	e.pending[id] = e.scheduler.Schedule(at, func() { e.run(id) })
}

// Wait blocks until every purge already handed off has returned.
func (e *ExpiryEngine) Wait() {
	e.inflight.Wait()
}

// run is the scheduled expiry action. It only hands the purge off.
func (e *ExpiryEngine) run(id uuid.UUID) {
	e.mu.Lock()
	delete(e.pending, id)
	e.mu.Unlock()

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		e.purgeOrRetry(id)
	}()
}

func (e *ExpiryEngine) purgeOrRetry(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), e.actionTimeout)
	defer cancel()

	if err := e.purge(ctx, id); err != nil {
		e.log.Warn("Status purge failed", "status_id", id, "error", err)
		e.retry(id)
	}
}

// purge marks the post expired and deletes it from the store.
// A post not yet due is rescheduled at its recomputed deadline.
func (e *ExpiryEngine) purge(ctx context.Context, id uuid.UUID) error {
	post, err := e.store.GetStatus(ctx, id)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		e.forget(id)
		return nil
	case err != nil:
		return fmt.Errorf("load status %s: %w", id, err)
	}

	deadline := post.ExpiryFor(e.ttl)
	if e.scheduler.Now().Before(deadline) {
		e.schedule(id, deadline)
		return nil
	}

	e.mu.Lock()
	e.expired[id] = struct{}{}
	e.mu.Unlock()

	if err := e.store.DeleteStatus(ctx, id); err != nil && !errors.Is(err, errors.ErrNotFound) {
		return fmt.Errorf("delete status %s: %w", id, err)
	}
	e.forget(id)
	e.log.Debug("Status expired", "status_id", id, "author_id", post.AuthorID)
	return nil
}

func (e *ExpiryEngine) retry(id uuid.UUID) {
	e.mu.Lock()
	b, ok := e.retries[id]
	if !ok {
		b = e.newBackOff()
		e.retries[id] = b
	}
	delay := b.NextBackOff()
	if delay == backoff.Stop {
		delete(e.retries, id)
		e.mu.Unlock()
		e.log.Error("Status purge abandoned until next restart", "status_id", id)
		return
	}
	e.pending[id] = e.scheduler.After(delay, func() { e.run(id) })
	e.mu.Unlock()
}

// forget drops all bookkeeping of a purged post.
// The expired mark is kept until the store no longer returns the post.
func (e *ExpiryEngine) forget(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if timerID, ok := e.pending[id]; ok {
		e.scheduler.Cancel(timerID)
		delete(e.pending, id)
	}
	delete(e.retries, id)
	delete(e.expired, id)
}

package runtime

import (
	"chat-sync/contract"
	"container/heap"
	"context"
	"log/slog"
	"sync"
	"time"
)

var _ contract.IScheduler = (*Scheduler)(nil)
var _ contract.Worker = (*Scheduler)(nil)

// Scheduler is the single time-driven loop shared by typing timeouts and status expiry.
// Callbacks run on the loop goroutine, one at a time, and should be short:
// a slow callback delays every later deadline. Store I/O is handed off by the caller.
// A callback panic is logged and does not stop the loop.
type Scheduler struct {
	mu     sync.Mutex
	log    *slog.Logger
	now    func() time.Time
	queue  timerQueue
	byID   map[contract.TimerID]*timer
	nextID contract.TimerID
	wake   chan struct{}
}

type timer struct {
	id    contract.TimerID
	at    time.Time
	fn    func()
	index int
}

func NewScheduler(log *slog.Logger, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		log:  log,
		now:  now,
		byID: make(map[contract.TimerID]*timer),
		wake: make(chan struct{}, 1),
	}
}

func (s *Scheduler) Now() time.Time { return s.now() }

// Schedule registers fn to run once at (or right after) at.
func (s *Scheduler) Schedule(at time.Time, fn func()) contract.TimerID {
	s.mu.Lock()
	s.nextID++
	t := &timer{id: s.nextID, at: at, fn: fn}
	s.byID[t.id] = t
	heap.Push(&s.queue, t)
	head := s.queue[0] == t
	s.mu.Unlock()

	if head {
		s.notify()
	}
	return t.id
}

func (s *Scheduler) After(d time.Duration, fn func()) contract.TimerID {
	return s.Schedule(s.now().Add(d), fn)
}

// Cancel removes a pending timer. It returns false if the timer already fired or never existed.
func (s *Scheduler) Cancel(id contract.TimerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	heap.Remove(&s.queue, t.index)
	return true
}

// Pending returns the number of timers waiting to fire.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Run drives the loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Debug("Scheduler started")
	for {
		if s.FireDue() > 0 {
			continue
		}
		wait := s.untilNext()

		sleep := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			sleep.Stop()
			s.log.Debug("Scheduler stopped", "pending", s.Pending())
			return nil
		case <-s.wake:
		case <-sleep.C:
		}
		sleep.Stop()
	}
}

// FireDue runs, in deadline order, every timer whose deadline has passed
// and returns how many fired. Timers scheduled by a callback for a past
// deadline are picked up by the next call.
func (s *Scheduler) FireDue() int {
	s.mu.Lock()
	now := s.now()
	var due []*timer
	for len(s.queue) > 0 && !s.queue[0].at.After(now) {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.byID, t.id)
		due = append(due, t)
	}
	s.mu.Unlock()

	for _, t := range due {
		s.fire(t)
	}
	return len(due)
}

func (s *Scheduler) untilNext() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return time.Hour
	}
	return s.queue[0].at.Sub(s.now())
}

func (s *Scheduler) fire(t *timer) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Scheduled callback panicked", "timer_id", t.id, "panic", r)
		}
	}()
	t.fn()
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// timerQueue is a min-heap ordered by deadline, then by insertion order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].id < q[j].id
	}
	return q[i].at.Before(q[j].at)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

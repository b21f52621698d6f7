// Package scheduler runs work that spans several engine frames.
//
// The engine calls the plugin once per frame on its script thread and nothing
// may block that call. Work that has to wait for the engine (a texture
// dictionary streaming in, a screen fade finishing) is queued here as a Task
// and polled once per frame until it reports done.
package scheduler

import (
	"log/slog"
	"sync"
	"time"
)

// Task is polled once per frame. It returns true when it is finished.
type Task func(now time.Time) bool

type entry struct {
	name string
	task Task
}

// Scheduler holds pending tasks. Schedule may be called from any goroutine;
// Tick must only be called from the engine thread.
type Scheduler struct {
	mu     sync.Mutex
	items  []entry
	logger *slog.Logger
}

// New creates an empty scheduler.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		items:  make([]entry, 0),
		logger: logger,
	}
}

// Schedule queues t. It first runs on the next Tick.
func (s *Scheduler) Schedule(name string, t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, entry{name: name, task: t})
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Tick polls every pending task once and returns how many are still pending.
// Tasks scheduled while ticking run on the next Tick. A panicking task is
// logged and dropped.
func (s *Scheduler) Tick(now time.Time) int {
	s.mu.Lock()
	current := s.items
	s.items = make([]entry, 0, cap(current))
	s.mu.Unlock()

	var pending []entry
	for _, e := range current {
		if !s.poll(e, now) {
			pending = append(pending, e)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(pending, s.items...)
	return len(s.items)
}

func (s *Scheduler) poll(e entry, now time.Time) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scheduled task panicked", "task", e.name, "panic", r)
			done = true
		}
	}()
	return e.task(now)
}

// WaitUntil returns a task that runs then once cond holds. cond is checked
// once per frame, starting with the first poll.
func WaitUntil(cond func() bool, then func()) Task {
	return func(time.Time) bool {
		if !cond() {
			return false
		}
		then()
		return true
	}
}

// After returns a task that runs fn once d has elapsed since its first poll.
func After(d time.Duration, fn func()) Task {
	var start time.Time
	return func(now time.Time) bool {
		if start.IsZero() {
			start = now
		}
		if now.Sub(start) < d {
			return false
		}
		fn()
		return true
	}
}

// Sequence runs tasks one after another, moving to the next one on the frame
// after the previous one finished.
func Sequence(tasks ...Task) Task {
	i := 0
	return func(now time.Time) bool {
		if i >= len(tasks) {
			return true
		}
		if tasks[i](now) {
			i++
		}
		return i >= len(tasks)
	}
}

// Package scheduler debounces raw filesystem events into settled, per-file
// change dispatches. Changes to different files dispatch independently;
// changes to the same file are strictly serialized.
package scheduler

import (
	"sync"
	"time"

	"github.com/ripplebuild/ripple/internal/core/domain"
)

// Dispatch handles one settled change. It runs on its own goroutine; the
// scheduler guarantees at most one in-flight call per file.
type Dispatch func(path string)

// pendingChange tracks one file with an outstanding, not-yet-dispatched
// change.
type pendingChange struct {
	display   string
	lastEvent time.Time
	timer     *time.Timer
	running   bool
	rerun     bool
}

// Scheduler owns all debounce timer state. Events flow in through OnEvent;
// settled changes flow out through the dispatch callback.
type Scheduler struct {
	mu       sync.Mutex
	window   time.Duration
	dispatch Dispatch
	pending  map[domain.FileIdentity]*pendingChange
	stopped  bool
	inflight sync.WaitGroup
}

// New creates a scheduler with the given debounce window.
func New(window time.Duration, dispatch Dispatch) *Scheduler {
	return &Scheduler{
		window:   window,
		dispatch: dispatch,
		pending:  make(map[domain.FileIdentity]*pendingChange),
	}
}

// OnEvent records a raw filesystem event for path and (re)arms that file's
// debounce timer. Events for a stopped scheduler are dropped.
func (s *Scheduler) OnEvent(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	id := domain.NewFileIdentity(path)
	pc, ok := s.pending[id]
	if !ok {
		pc = &pendingChange{}
		s.pending[id] = pc
	}
	pc.display = path
	pc.lastEvent = time.Now()

	if pc.timer != nil {
		pc.timer.Stop()
	}
	pc.timer = time.AfterFunc(s.window, func() { s.fire(id) })
}

// fire runs when a file's debounce window elapses. A fire that lost the race
// against a newer event no-ops; the newer event's timer dispatches instead.
// A fire that lands while the previous dispatch for the same file is still
// running marks the file for one follow-up dispatch after completion.
func (s *Scheduler) fire(id domain.FileIdentity) {
	s.mu.Lock()

	pc, ok := s.pending[id]
	if !ok || s.stopped {
		s.mu.Unlock()
		return
	}
	if time.Since(pc.lastEvent) < s.window {
		// A newer event re-armed the timer after this one was scheduled.
		s.mu.Unlock()
		return
	}

	if pc.running {
		// The staleness check above means this fire came from the current
		// timer, so it is spent and can be cleared.
		pc.rerun = true
		pc.timer = nil
		s.mu.Unlock()
		return
	}

	pc.running = true
	pc.timer = nil
	display := pc.display
	s.inflight.Add(1)
	s.mu.Unlock()

	defer s.inflight.Done()
	s.dispatch(display)

	s.mu.Lock()
	pc.running = false
	switch {
	case s.stopped:
	case pc.rerun:
		pc.rerun = false
		// Content changed again mid-dispatch; let it settle once more. An
		// event that arrived during the dispatch already armed a live timer,
		// in which case that timer covers the follow-up.
		if pc.timer == nil {
			pc.timer = time.AfterFunc(s.window, func() { s.fire(id) })
		}
	case pc.timer == nil:
		delete(s.pending, id)
	}
	s.mu.Unlock()
}

// PendingCount returns the number of files with an undispatched change.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending timer without firing it, drops all pending
// changes, and waits for in-flight dispatches to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id, pc := range s.pending {
		if pc.timer != nil {
			pc.timer.Stop()
		}
		delete(s.pending, id)
	}
	s.mu.Unlock()

	s.inflight.Wait()
}

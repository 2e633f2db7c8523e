package crawler

import "sync/atomic"

// Phase is the lifecycle stage of a crawl.
type Phase int32

const (
	// PhaseIdle means Crawl has not been called yet.
	PhaseIdle Phase = iota
	// PhaseSeeding means seed URLs are being admitted.
	PhaseSeeding
	// PhaseRunning means workers are being granted new fetches.
	PhaseRunning
	// PhaseDraining means no new fetches are granted and in-flight
	// fetches are finishing.
	PhaseDraining
	// PhaseTerminated means every worker has exited.
	PhaseTerminated
)

// String returns the lower-case name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSeeding:
		return "seeding"
	case PhaseRunning:
		return "running"
	case PhaseDraining:
		return "draining"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// State holds the page-limit counter of a crawl.
// Grants are counted when they are handed out, not when the fetch
// finishes, so concurrent workers can never jointly exceed the limit.
type State struct {
	limit     int64
	attempted atomic.Int64
	stopped   atomic.Bool
}

// NewState returns a State that grants at most limit fetches.
func NewState(limit int) *State {
	return &State{limit: int64(limit)}
}

// Acquire asks for permission to fetch one more page.
// The check against the limit and the increment are a single
// compare-and-swap, so the limit holds under any number of callers.
func (s *State) Acquire() bool {
	for {
		if s.stopped.Load() {
			return false
		}
		n := s.attempted.Load()
		if n >= s.limit {
			return false
		}
		if s.attempted.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Refund returns a grant that was not used for a fetch.
func (s *State) Refund() {
	for {
		n := s.attempted.Load()
		if n <= 0 {
			return
		}
		if s.attempted.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Stop makes every later Acquire fail.
func (s *State) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *State) Stopped() bool {
	return s.stopped.Load()
}

// Accepting reports whether Acquire can still succeed.
func (s *State) Accepting() bool {
	return !s.stopped.Load() && s.attempted.Load() < s.limit
}

// Attempted returns the number of grants currently held or used.
func (s *State) Attempted() int {
	return int(s.attempted.Load())
}

// Limit returns the configured page limit.
func (s *State) Limit() int {
	return int(s.limit)
}

// LimitReached reports whether every grant has been handed out.
func (s *State) LimitReached() bool {
	return s.attempted.Load() >= s.limit
}

// Package search coordinates a vanity key search: one compiled target,
// any number of CPU workers, an optional GPU worker and the shared
// counters they report into.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// Emitter receives each verified match, one at a time.
type Emitter func(generator.Result)

// State is the counter set shared by all workers. Attempts and matches
// are lock-free; the mutex only keeps emitted matches from interleaving.
type State struct {
	attempts atomic.Uint64
	found    atomic.Uint64
	limit    uint64 // 0 means unbounded
	start    time.Time
	cancel   context.CancelFunc

	mu   sync.Mutex
	emit Emitter
}

// NewState returns a State that calls cancel once limit matches have
// been reported. A zero limit never cancels.
func NewState(limit uint64, cancel context.CancelFunc, emit Emitter) *State {
	if cancel == nil {
		cancel = func() {}
	}
	if emit == nil {
		emit = func(generator.Result) {}
	}
	return &State{limit: limit, start: time.Now(), cancel: cancel, emit: emit}
}

// AddAttempts adds n tried keys.
func (s *State) AddAttempts(n uint64) {
	if n != 0 {
		s.attempts.Add(n)
	}
}

// Attempts returns the number of keys tried so far.
func (s *State) Attempts() uint64 { return s.attempts.Load() }

// Found returns the number of matches emitted.
func (s *State) Found() uint64 {
	n := s.found.Load()
	if s.limit > 0 && n > s.limit {
		return s.limit
	}
	return n
}

// Limit returns the configured match limit.
func (s *State) Limit() uint64 { return s.limit }

// LimitReached reports whether the limit has been hit.
func (s *State) LimitReached() bool {
	return s.limit > 0 && s.found.Load() >= s.limit
}

// Elapsed returns the time since the state was created.
func (s *State) Elapsed() time.Duration { return time.Since(s.start) }

// Stats returns a snapshot of the counters.
func (s *State) Stats() generator.Stats {
	attempts := s.Attempts()
	elapsed := s.Elapsed().Seconds()
	var rate float64
	if elapsed > 0 {
		rate = float64(attempts) / elapsed
	}
	return generator.Stats{
		Attempts:    attempts,
		Found:       s.Found(),
		HashRate:    rate,
		ElapsedSecs: elapsed,
	}
}

// Report emits res unless the limit was already reached. The match that
// reaches the limit fires the cancellation.
func (s *State) Report(res generator.Result) bool {
	n := s.found.Add(1)
	if s.limit > 0 && n > s.limit {
		return false
	}
	res.Found = n
	res.Attempts = s.Attempts()

	s.mu.Lock()
	s.emit(res)
	s.mu.Unlock()

	if n == s.limit {
		s.cancel()
	}
	return true
}

var _ generator.Reporter = (*State)(nil)

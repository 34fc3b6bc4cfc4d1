package playback

import (
	"sync"
	"time"
)

type State int

const (
	NotRunning State = iota
	Playing
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "not_running"
	}
}

// sharedState is the only value touched by both the playback goroutine and
// controllers. Critical sections copy values in or out and never sleep.
type sharedState struct {
	mu      sync.Mutex
	state   State
	elapsed time.Duration
}

func (s *sharedState) load() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *sharedState) store(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// transition moves to next only if the current state is one of from.
// It reports the state observed before the call and whether it moved.
func (s *sharedState) transition(next State, from ...State) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.state
	for _, f := range from {
		if current == f {
			s.state = next
			return current, true
		}
	}
	return current, false
}

// begin claims the cell for a new session and resets the elapsed counter.
func (s *sharedState) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != NotRunning {
		return false
	}
	s.state = Playing
	s.elapsed = 0
	return true
}

func (s *sharedState) addElapsed(d time.Duration) {
	s.mu.Lock()
	s.elapsed += d
	s.mu.Unlock()
}

func (s *sharedState) loadElapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

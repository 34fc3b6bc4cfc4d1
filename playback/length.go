package playback

import (
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/clock"
	"github.com/TCC-Pucpr/fed-inspirasom/score"
)

// TotalLength runs the score through a dry-run timer and a discarding
// dispatcher, returning how long a real playback would take.
func TotalLength(s *score.Score) time.Duration {
	state := &sharedState{state: Playing}
	session := &Session{
		score:      s,
		state:      state,
		timer:      newDryRunTimer(clock.NewTicker(s.TicksPerQuarter()), state),
		dispatcher: discardDispatcher{},
	}
	session.run()
	return state.loadElapsed()
}

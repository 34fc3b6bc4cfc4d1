package playback

import (
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/clock"
)

// DefaultPollInterval bounds how long a pause or stop request can go unseen.
const DefaultPollInterval = 33 * time.Millisecond

// PausingTimer waits out event deltas in slices so that pause and stop
// requests made on other goroutines are observed while a note is held.
type PausingTimer struct {
	ticker  clock.Ticker
	slice   time.Duration
	state   *sharedState
	onPause func()
	sleep   func(time.Duration)

	// dryRun accumulates durations without sleeping or reading the state.
	dryRun bool
}

func newPausingTimer(ticker clock.Ticker, slice time.Duration, state *sharedState, onPause func(), sleep func(time.Duration)) *PausingTimer {
	if slice <= 0 {
		slice = DefaultPollInterval
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	if onPause == nil {
		onPause = func() {}
	}
	return &PausingTimer{
		ticker:  ticker,
		slice:   slice,
		state:   state,
		onPause: onPause,
		sleep:   sleep,
	}
}

func newDryRunTimer(ticker clock.Ticker, state *sharedState) *PausingTimer {
	return &PausingTimer{ticker: ticker, state: state, dryRun: true}
}

func (t *PausingTimer) DurationFor(nTicks uint32) time.Duration {
	return t.ticker.DurationFor(nTicks)
}

func (t *PausingTimer) SetTempo(microsPerQuarter uint32) {
	t.ticker.SetTempo(microsPerQuarter)
}

// Sleep blocks for the duration of nTicks, not counting time spent paused.
// It returns false when the playback was stopped during the wait.
func (t *PausingTimer) Sleep(nTicks uint32) bool {
	total := t.ticker.DurationFor(nTicks)
	if total == 0 {
		return true
	}
	if t.dryRun {
		t.state.addElapsed(total)
		return true
	}

	for total > t.slice {
		if !t.waitWhilePaused() {
			return false
		}
		t.sleep(t.slice)
		t.state.addElapsed(t.slice)
		total -= t.slice
	}

	if !t.waitWhilePaused() {
		return false
	}
	t.sleep(total)
	t.state.addElapsed(total)
	return true
}

// waitWhilePaused returns true once the state is Playing and false if the
// playback was stopped. The pause callback fires once per pause episode.
func (t *PausingTimer) waitWhilePaused() bool {
	emittedPause := false
	for {
		switch t.state.load() {
		case Playing:
			return true
		case Paused:
			if !emittedPause {
				t.onPause()
				emittedPause = true
			}
			t.sleep(t.slice)
		default:
			return false
		}
	}
}

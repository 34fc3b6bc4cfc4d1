package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	outcome Outcome
	err     error
}

func playInBackground(session *Session) <-chan result {
	done := make(chan result, 1)
	go func() {
		outcome, err := session.Play()
		done <- result{outcome, err}
	}()
	return done
}

func TestStopLatencyIsBoundedByPollInterval(t *testing.T) {
	poll := 5 * time.Millisecond
	// a single note held for ten seconds
	s := singleTrack(noteOn(0, 60), noteOff(96*20, 60))
	p := NewPlayer(s, WithPollInterval(poll))

	noteStarted := make(chan struct{}, 1)
	r := &recorder{}
	r.onNote = func(on bool, key uint8) bool {
		if on {
			noteStarted <- struct{}{}
		}
		return true
	}

	session, err := p.Start(r)
	require.NoError(t, err)
	done := playInBackground(session)

	<-noteStarted
	time.Sleep(3 * poll)
	stoppedAt := time.Now()
	require.NoError(t, p.Stop())

	select {
	case res := <-done:
		assert := assert.New(t)
		assert.NoError(res.err)
		assert.Equal(Interrupted, res.outcome)
		assert.Less(time.Since(stoppedAt), 40*poll)
		assert.Equal([]string{"on 60", "off 60", "interrupted"}, r.Calls())
		assert.Equal(NotRunning, p.State())
	case <-time.After(5 * time.Second):
		t.Fatal("playback did not stop")
	}
}

func TestPauseHoldsElapsedAcrossSlices(t *testing.T) {
	poll := 2 * time.Millisecond
	s := singleTrack(noteOn(0, 60), noteOff(96*20, 60))
	p := NewPlayer(s, WithPollInterval(poll))

	pauses := make(chan struct{}, 4)
	noteStarted := make(chan struct{}, 1)
	observer := ObserverFuncs{
		Note: func(on bool, key uint8, velocity uint8) bool {
			if on {
				noteStarted <- struct{}{}
			}
			return true
		},
		Pause: func() { pauses <- struct{}{} },
	}

	session, err := p.Start(observer)
	require.NoError(t, err)
	done := playInBackground(session)

	<-noteStarted
	require.NoError(t, p.Pause())
	<-pauses

	assert := assert.New(t)
	atPause := p.Elapsed()
	time.Sleep(20 * poll)
	assert.Equal(atPause, p.Elapsed())
	assert.Equal(Paused, p.State())

	require.NoError(t, p.Unpause())
	time.Sleep(10 * poll)
	assert.Greater(p.Elapsed(), atPause)

	require.NoError(t, p.Pause())
	<-pauses
	require.NoError(t, p.Stop())

	res := <-done
	assert.Equal(Interrupted, res.outcome)
	assert.Len(pauses, 0)
	assert.Less(p.Elapsed(), p.Length())
}

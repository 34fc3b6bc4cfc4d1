package playback

import (
	"fmt"

	"github.com/TCC-Pucpr/fed-inspirasom/score"
	"github.com/rs/zerolog"
)

type Outcome int

const (
	Finished Outcome = iota
	Interrupted
)

func (o Outcome) String() string {
	if o == Finished {
		return "finished"
	}
	return "interrupted"
}

// Session owns the timer and dispatcher of one playback attempt. It is
// created by Player.Start and can be played once.
type Session struct {
	score      *score.Score
	state      *sharedState
	observer   Observer
	timer      *PausingTimer
	dispatcher Dispatcher
	log        zerolog.Logger
	played     bool
}

// Play drives the score to completion on the calling goroutine. A panic in
// the observer or output port is returned as ErrPlayback.
func (s *Session) Play() (outcome Outcome, err error) {
	if s.played {
		return Interrupted, ErrSessionUsed
	}
	s.played = true

	defer s.state.store(NotRunning)
	defer func() {
		if r := recover(); r != nil {
			s.dispatcher.FlushAllOff()
			s.log.Error().Interface("panic", r).Msg("playback aborted")
			outcome = Interrupted
			err = fmt.Errorf("%w: %v", ErrPlayback, r)
		}
	}()

	s.log.Info().Int("events", len(s.score.Timeline())).Msg("playback started")
	finished := s.run()
	s.dispatcher.FlushAllOff()

	if !finished {
		s.log.Info().Msg("playback interrupted")
		s.observer.OnInterrupted()
		return Interrupted, nil
	}
	s.log.Info().Msg("playback finished")
	s.observer.OnFinished()
	return Finished, nil
}

func (s *Session) run() bool {
	for _, te := range s.score.Timeline() {
		if !s.timer.Sleep(te.Delta) {
			return false
		}
		if te.Event.Kind == score.Tempo {
			s.timer.SetTempo(te.Event.Tempo)
			continue
		}
		if !s.dispatcher.Dispatch(te.Event) {
			return false
		}
	}
	return true
}

package game

import (
	"sync/atomic"
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/note"
	"github.com/bep/debounce"
	"github.com/rs/zerolog"
)

// NoteObserver turns note events into ocarina payloads and hands them to a
// sink, usually a UI channel. Progress is logged at most once per interval.
type NoteObserver struct {
	// IgnoreNoteErrors skips notes the ocarina cannot play instead of
	// ending the playback.
	IgnoreNoteErrors bool

	sink     func(note.Payload) bool
	onState  func(state string)
	log      zerolog.Logger
	progress func(f func())
	notes    atomic.Int64
}

func NewNoteObserver(log zerolog.Logger, progressInterval time.Duration, sink func(note.Payload) bool, onState func(state string)) *NoteObserver {
	if progressInterval <= 0 {
		progressInterval = time.Second
	}
	return &NoteObserver{
		IgnoreNoteErrors: true,
		sink:             sink,
		onState:          onState,
		log:              log,
		progress:         debounce.New(progressInterval),
	}
}

func (o *NoteObserver) OnNote(on bool, key uint8, velocity uint8) bool {
	payload, err := note.NewPayload(key, velocity, on)
	if err != nil {
		if o.IgnoreNoteErrors {
			o.log.Warn().Err(err).Msg("skipping note")
			return true
		}
		o.log.Error().Err(err).Msg("unsupported note, ending playback")
		return false
	}

	o.log.Debug().Str("note", payload.NoteName).Bool("state", payload.State).Uint8("velocity", velocity).Msg("emitting note")
	n := o.notes.Add(1)
	o.progress(func() {
		o.log.Info().Int64("events", n).Msg("playback progress")
	})

	if o.sink == nil {
		return true
	}
	return o.sink(payload)
}

func (o *NoteObserver) OnPause() {
	o.log.Info().Msg("emitting paused state")
	o.emitState("PAUSED")
}

func (o *NoteObserver) OnInterrupted() {
	o.log.Info().Msg("emitting interrupted state")
	o.emitState("INTERRUPTED")
}

func (o *NoteObserver) OnFinished() {
	o.log.Info().Msg("emitting finished state")
	o.emitState("FINISHED")
}

// Events is the number of note events emitted so far.
func (o *NoteObserver) Events() int64 {
	return o.notes.Load()
}

func (o *NoteObserver) emitState(state string) {
	if o.onState != nil {
		o.onState(state)
	}
}

package playback

import (
	"github.com/TCC-Pucpr/fed-inspirasom/score"
	"github.com/TCC-Pucpr/fed-inspirasom/util"
	"github.com/rs/zerolog"
)

// Dispatcher is the sink a session feeds score events into.
type Dispatcher interface {
	// Dispatch handles one event. Returning false ends the playback.
	Dispatch(event score.Event) bool
	// FlushAllOff releases every note still sounding.
	FlushAllOff()
}

// observingDispatcher reports notes to an Observer and optionally forwards
// the raw messages to an output port.
type observingDispatcher struct {
	observer Observer
	state    *sharedState
	forward  func(msg []byte) error
	log      zerolog.Logger

	// key -> channel of every note currently on
	sounding map[uint8]uint8
}

func newObservingDispatcher(observer Observer, state *sharedState, forward func(msg []byte) error, log zerolog.Logger) *observingDispatcher {
	return &observingDispatcher{
		observer: observer,
		state:    state,
		forward:  forward,
		log:      log,
		sounding: make(map[uint8]uint8),
	}
}

func (d *observingDispatcher) Dispatch(event score.Event) bool {
	switch d.state.load() {
	case Stopped, NotRunning:
		return false
	}

	if event.Playable() && d.forward != nil {
		if err := d.forward(event.Raw); err != nil {
			d.log.Error().Err(err).Msg("could not forward message to output port")
			return false
		}
	}

	switch event.Kind {
	case score.NoteOn:
		d.sounding[event.Key] = event.Channel
		return d.observer.OnNote(true, event.Key, event.Velocity)
	case score.NoteOff:
		delete(d.sounding, event.Key)
		return d.observer.OnNote(false, event.Key, event.Velocity)
	default:
		return true
	}
}

// FlushAllOff emits a note off for every sounding key in ascending order.
// A panicking observer or port does not stop the flush.
func (d *observingDispatcher) FlushAllOff() {
	keys := util.SortedKeys(d.sounding)
	if len(keys) > 0 {
		d.log.Debug().Int("notes", len(keys)).Msg("releasing sounding notes")
	}
	for _, key := range keys {
		channel := d.sounding[key]
		delete(d.sounding, key)
		d.releaseNote(channel, key)
	}
}

func (d *observingDispatcher) releaseNote(channel, key uint8) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Uint8("key", key).Msg("panic while releasing note")
		}
	}()
	if d.forward != nil {
		if err := d.forward([]byte{0x80 | (channel & 0x0F), key, 0}); err != nil {
			d.log.Warn().Err(err).Uint8("key", key).Msg("could not forward note off")
		}
	}
	d.observer.OnNote(false, key, 0)
}

func (d *observingDispatcher) soundingCount() int {
	return len(d.sounding)
}

// discardDispatcher accepts everything. Used to measure a score's length.
type discardDispatcher struct{}

func (discardDispatcher) Dispatch(score.Event) bool { return true }

func (discardDispatcher) FlushAllOff() {}

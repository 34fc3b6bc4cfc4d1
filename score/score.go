package score

import "sort"

// Format mirrors the SMF header format field.
type Format uint16

const (
	SingleTrack Format = 0
	Parallel    Format = 1
	Sequential  Format = 2
)

type Kind uint8

const (
	Other Kind = iota
	NoteOn
	NoteOff
	Tempo
)

// Event is one decoded track event. Raw holds the original message bytes
// so that playable messages can be forwarded to an output port untouched.
type Event struct {
	Kind     Kind
	Channel  uint8
	Key      uint8
	Velocity uint8

	// microseconds per quarter note, only set for Tempo
	Tempo uint32

	Raw []byte
}

// Playable reports whether Raw is a channel message an output port accepts.
func (e Event) Playable() bool {
	return len(e.Raw) > 0 && e.Raw[0] >= 0x80 && e.Raw[0] < 0xF0
}

type TimedEvent struct {
	Delta uint32
	Event Event
}

type Track = []TimedEvent

// Score is an immutable parsed timeline. It is safe to share between
// goroutines once constructed.
type Score struct {
	format          Format
	ticksPerQuarter uint16
	tracks          []Track
	timeline        []TimedEvent
}

func New(format Format, ticksPerQuarter uint16, tracks []Track) *Score {
	s := &Score{
		format:          format,
		ticksPerQuarter: ticksPerQuarter,
		tracks:          tracks,
	}
	if format == Parallel {
		s.timeline = merge(tracks)
	} else {
		s.timeline = concat(tracks)
	}
	return s
}

func (s *Score) Format() Format { return s.format }

func (s *Score) TicksPerQuarter() uint16 { return s.ticksPerQuarter }

func (s *Score) NumTracks() int { return len(s.tracks) }

// Timeline returns every event in playback order with deltas relative to
// the previous event. The returned slice must not be modified.
func (s *Score) Timeline() []TimedEvent { return s.timeline }

// TotalTicks is the absolute tick position of the last event.
func (s *Score) TotalTicks() uint64 {
	var total uint64
	for _, te := range s.timeline {
		total += uint64(te.Delta)
	}
	return total
}

func concat(tracks []Track) []TimedEvent {
	var res []TimedEvent
	for _, track := range tracks {
		res = append(res, track...)
	}
	return res
}

type absEvent struct {
	absTicks uint64
	track    int
	event    Event
}

// merge interleaves parallel tracks by absolute tick. Events at the same
// tick keep track order, then their order within the track.
func merge(tracks []Track) []TimedEvent {
	var all []absEvent
	for i, track := range tracks {
		var absTicks uint64
		for _, te := range track {
			absTicks += uint64(te.Delta)
			all = append(all, absEvent{absTicks: absTicks, track: i, event: te.Event})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].absTicks != all[j].absTicks {
			return all[i].absTicks < all[j].absTicks
		}
		return all[i].track < all[j].track
	})

	res := make([]TimedEvent, 0, len(all))
	var last uint64
	for _, e := range all {
		res = append(res, TimedEvent{Delta: uint32(e.absTicks - last), Event: e.event})
		last = e.absTicks
	}
	return res
}

package clock

import "time"

// DefaultTempo is 120 BPM expressed in microseconds per quarter note.
const DefaultTempo uint32 = 500_000

// Ticker converts tick counts into wall-clock durations for a metrical
// score. It is not safe for concurrent use; a session owns its own copy.
type Ticker struct {
	ticksPerQuarter uint64
	tempo           uint64
}

func NewTicker(ticksPerQuarter uint16) Ticker {
	tpq := uint64(ticksPerQuarter)
	if tpq == 0 {
		tpq = 1
	}
	return Ticker{ticksPerQuarter: tpq, tempo: uint64(DefaultTempo)}
}

func (t *Ticker) DurationFor(nTicks uint32) time.Duration {
	us := uint64(nTicks) * t.tempo
	whole := us / t.ticksPerQuarter
	rem := us % t.ticksPerQuarter
	ns := whole*uint64(time.Microsecond) + rem*uint64(time.Microsecond)/t.ticksPerQuarter
	return time.Duration(ns)
}

// SetTempo applies a tempo meta event. Zero is ignored, the loader rejects
// such scores before they reach playback.
func (t *Ticker) SetTempo(microsPerQuarter uint32) {
	if microsPerQuarter == 0 {
		return
	}
	t.tempo = uint64(microsPerQuarter)
}

func (t *Ticker) Tempo() uint32 { return uint32(t.tempo) }

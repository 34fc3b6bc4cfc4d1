package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/score"
)

func noteOn(delta uint32, key uint8) score.TimedEvent {
	return score.TimedEvent{Delta: delta, Event: score.Event{
		Kind: score.NoteOn, Key: key, Velocity: 100, Raw: []byte{0x90, key, 100},
	}}
}

func noteOff(delta uint32, key uint8) score.TimedEvent {
	return score.TimedEvent{Delta: delta, Event: score.Event{
		Kind: score.NoteOff, Key: key, Velocity: 64, Raw: []byte{0x80, key, 64},
	}}
}

func setTempo(delta uint32, tempo uint32) score.TimedEvent {
	return score.TimedEvent{Delta: delta, Event: score.Event{Kind: score.Tempo, Tempo: tempo}}
}

func endOfTrack(delta uint32) score.TimedEvent {
	return score.TimedEvent{Delta: delta, Event: score.Event{Raw: []byte{0xFF, 0x2F, 0x00}}}
}

func singleTrack(events ...score.TimedEvent) *score.Score {
	return score.New(score.SingleTrack, 96, []score.Track{events})
}

// recorder is an Observer that stores every call. Hooks run before the
// call is recorded.
type recorder struct {
	mu     sync.Mutex
	calls  []string
	onNote func(on bool, key uint8) bool
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *recorder) OnNote(on bool, key uint8, velocity uint8) bool {
	accept := true
	if r.onNote != nil {
		accept = r.onNote(on, key)
	}
	if on {
		r.add(fmt.Sprintf("on %d", key))
	} else {
		r.add(fmt.Sprintf("off %d", key))
	}
	return accept
}

func (r *recorder) OnPause()       { r.add("pause") }
func (r *recorder) OnInterrupted() { r.add("interrupted") }
func (r *recorder) OnFinished()    { r.add("finished") }

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// fakeSleep records requested sleeps without blocking.
type fakeSleep struct {
	slept []time.Duration
	hook  func(n int)
}

func (f *fakeSleep) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	if f.hook != nil {
		f.hook(len(f.slept))
	}
}

func (f *fakeSleep) total() time.Duration {
	var sum time.Duration
	for _, d := range f.slept {
		sum += d
	}
	return sum
}

package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/TCC-Pucpr/fed-inspirasom/score"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrInvalidScore = errors.New("the selected file is invalid")

const metaTempo = 0x51

func ReadMidiFile(filepath string) (*score.Score, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file %s: %w", filepath, err)
	}
	return ReadMidiBytes(dat)
}

// ReadMidiBytes parses a standard midi file into a Score. Only metrical
// timing is supported.
func ReadMidiBytes(dat []byte) (s *score.Score, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("%w: %v", ErrInvalidScore, r)
		}
	}()

	mf, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScore, err.Error())
	}

	ticks, ok := mf.TimeFormat.(smf.MetricTicks)
	if !ok || ticks == 0 {
		return nil, fmt.Errorf("%w: unsupported time format %v", ErrInvalidScore, mf.TimeFormat)
	}

	tracks := make([]score.Track, 0, len(mf.Tracks))
	for _, track := range mf.Tracks {
		converted := make(score.Track, 0, len(track))
		for _, evt := range track {
			event, err := convertEvent(evt.Message)
			if err != nil {
				return nil, err
			}
			converted = append(converted, score.TimedEvent{Delta: evt.Delta, Event: event})
		}
		tracks = append(tracks, converted)
	}

	return score.New(score.Format(mf.Format()), uint16(ticks), tracks), nil
}

func convertEvent(msg smf.Message) (score.Event, error) {
	raw := []byte(msg)
	event := score.Event{Kind: score.Other, Raw: raw}

	if tempo, ok := tempoOf(raw); ok {
		if tempo == 0 {
			return event, fmt.Errorf("%w: tempo of zero", ErrInvalidScore)
		}
		event.Kind = score.Tempo
		event.Tempo = tempo
		return event, nil
	}

	var channel, key, velocity uint8
	m := gomidi.Message(raw)
	switch {
	case m.GetNoteStart(&channel, &key, &velocity):
		event.Kind = score.NoteOn
	case m.GetNoteOff(&channel, &key, &velocity):
		event.Kind = score.NoteOff
	case m.GetNoteOn(&channel, &key, &velocity):
		// note on with zero velocity
		event.Kind = score.NoteOff
	default:
		return event, nil
	}
	event.Channel = channel
	event.Key = key
	event.Velocity = velocity
	return event, nil
}

// tempoOf decodes the set tempo meta event: FF 51 03 tt tt tt.
func tempoOf(raw []byte) (uint32, bool) {
	if len(raw) < 6 || raw[0] != 0xFF || raw[1] != metaTempo || raw[2] != 3 {
		return 0, false
	}
	return uint32(raw[3])<<16 | uint32(raw[4])<<8 | uint32(raw[5]), true
}

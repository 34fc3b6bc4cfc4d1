package note

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedNote = errors.New("note cannot be played on the ocarina")

// LowestKey is the midi key of G3, the lowest ocarina note.
const LowestKey uint8 = 55

const MaxVelocity uint8 = 127

var names = []string{
	"G3", "Ab3", "A3", "Bb3", "B3", "C4", "Db4", "D4", "Eb4",
	"E4", "F4", "Gb4", "G4", "Ab4", "A4", "Bb4", "B4", "C5",
}

type Note struct {
	Key   uint8
	Index uint8
	Name  string
}

func FromKey(key uint8) (Note, error) {
	if key < LowestKey || int(key-LowestKey) >= len(names) {
		return Note{}, fmt.Errorf("%w: key %d", ErrUnsupportedNote, key)
	}
	i := key - LowestKey
	return Note{Key: key, Index: i, Name: names[i]}, nil
}

func (n Note) IsFlat() bool {
	return strings.Contains(n.Name, "b")
}

// Payload is what the UI receives for each note event.
type Payload struct {
	NoteIndex uint8  `json:"note_index"`
	IsBmol    bool   `json:"is_bmol"`
	NoteName  string `json:"note_name"`
	Velocity  uint8  `json:"velocity"`
	State     bool   `json:"state"`
}

// NewPayload builds the payload of a note event. A zero velocity always
// reports the note as released.
func NewPayload(key uint8, velocity uint8, on bool) (Payload, error) {
	n, err := FromKey(key)
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		NoteIndex: n.Index,
		IsBmol:    n.IsFlat(),
		NoteName:  n.Name,
		Velocity:  velocity,
		State:     on && velocity != 0,
	}, nil
}

// VelocityPercentage maps a midi velocity onto 0..100.
func VelocityPercentage(velocity uint8) float32 {
	if velocity >= MaxVelocity {
		return 100
	}
	return float32(velocity) / float32(MaxVelocity) * 100
}

func (p Payload) String() string {
	state := "off"
	if p.State {
		state = "on"
	}
	return fmt.Sprintf("Note index: %d | isBmol: %v | Note name: %s | velocity: %d | state: %s",
		p.NoteIndex, p.IsBmol, p.NoteName, p.Velocity, state)
}

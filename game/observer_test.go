package game

import (
	"testing"
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/note"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNoteObserverEmitsPayloadsAndStates(t *testing.T) {
	var payloads []note.Payload
	var states []string
	obs := NewNoteObserver(zerolog.Nop(), time.Millisecond, func(p note.Payload) bool {
		payloads = append(payloads, p)
		return p.NoteName != "C5"
	}, func(state string) { states = append(states, state) })

	assert := assert.New(t)
	assert.True(obs.OnNote(true, 55, 90))
	assert.True(obs.OnNote(false, 55, 0))
	assert.True(obs.OnNote(true, 20, 90))
	assert.False(obs.OnNote(true, 72, 90))

	obs.OnPause()
	obs.OnInterrupted()
	obs.OnFinished()

	assert.Len(payloads, 3)
	assert.Equal("G3", payloads[0].NoteName)
	assert.True(payloads[0].State)
	assert.False(payloads[1].State)
	assert.Equal(int64(3), obs.Events())
	assert.Equal([]string{"PAUSED", "INTERRUPTED", "FINISHED"}, states)
}

func TestNoteObserverWithoutSinks(t *testing.T) {
	obs := NewNoteObserver(zerolog.Nop(), 0, nil, nil)
	obs.IgnoreNoteErrors = false

	assert := assert.New(t)
	assert.True(obs.OnNote(true, 60, 100))
	assert.False(obs.OnNote(true, 100, 100))
	obs.OnFinished()
}

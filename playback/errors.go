package playback

import "errors"

var (
	ErrAlreadyPlaying = errors.New("a music is already being played")
	ErrNotPlaying     = errors.New("there is no music being played")
	ErrPlayback       = errors.New("an error has occurred during playback")
	ErrSessionUsed    = errors.New("session has already been played")
)

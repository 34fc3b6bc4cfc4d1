package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type LengthResponse struct {
	ID      string `json:"id"`
	Seconds uint64 `json:"seconds"`
}

type StartResponse struct {
	AttemptID string `json:"attempt_id"`
	MusicID   string `json:"music_id"`
}

type GameStatus struct {
	State            string  `json:"state"`
	MusicID          string  `json:"music_id,omitempty"`
	AttemptID        string  `json:"attempt_id,omitempty"`
	ElapsedSeconds   float64 `json:"elapsed_seconds"`
	RemainingSeconds float64 `json:"remaining_seconds"`
	NotesPlayed      int     `json:"notes_played"`
	LastOutcome      string  `json:"last_outcome,omitempty"`
}

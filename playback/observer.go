package playback

// Observer receives the note events of one session. All methods are called
// from the goroutine running Session.Play.
type Observer interface {
	// OnNote is called for every note on and note off. Returning false
	// ends the playback early.
	OnNote(on bool, key uint8, velocity uint8) bool
	// OnPause is called once each time the playback enters a pause.
	OnPause()
	// OnInterrupted is called when the playback ends before the score does.
	OnInterrupted()
	// OnFinished is called when the whole score has been played.
	OnFinished()
}

// ObserverFuncs adapts plain functions to an Observer. Nil fields are
// no-ops and a nil Note accepts every note.
type ObserverFuncs struct {
	Note        func(on bool, key uint8, velocity uint8) bool
	Pause       func()
	Interrupted func()
	Finished    func()
}

func (o ObserverFuncs) OnNote(on bool, key uint8, velocity uint8) bool {
	if o.Note == nil {
		return true
	}
	return o.Note(on, key, velocity)
}

func (o ObserverFuncs) OnPause() {
	if o.Pause != nil {
		o.Pause()
	}
}

func (o ObserverFuncs) OnInterrupted() {
	if o.Interrupted != nil {
		o.Interrupted()
	}
}

func (o ObserverFuncs) OnFinished() {
	if o.Finished != nil {
		o.Finished()
	}
}

package playback

import (
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/clock"
	"github.com/TCC-Pucpr/fed-inspirasom/score"
	"github.com/TCC-Pucpr/fed-inspirasom/util"
	"github.com/rs/zerolog"
)

// Player holds a score and the playback state shared between the goroutine
// running a Session and any controller. At most one session is active.
type Player struct {
	score        *score.Score
	length       time.Duration
	state        *sharedState
	pollInterval time.Duration
	forward      func(msg []byte) error
	sleep        func(time.Duration)
	log          zerolog.Logger
}

type Option func(*Player)

// WithPollInterval sets the longest slice the timer sleeps before checking
// for pause and stop requests.
func WithPollInterval(d time.Duration) Option {
	return func(p *Player) { p.pollInterval = d }
}

// WithOutput forwards every playable message, and the note offs of a flush,
// to send. Typically the sender of a midi output port.
func WithOutput(send func(msg []byte) error) Option {
	return func(p *Player) { p.forward = send }
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *Player) { p.log = log }
}

func NewPlayer(s *score.Score, opts ...Option) *Player {
	p := &Player{
		score:        s,
		state:        &sharedState{},
		pollInterval: DefaultPollInterval,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.length = TotalLength(s)
	return p
}

// Start claims the player for a new session. It fails with
// ErrAlreadyPlaying, without touching any state, if a session is active.
func (p *Player) Start(observer Observer) (*Session, error) {
	if observer == nil {
		observer = ObserverFuncs{}
	}
	if !p.state.begin() {
		return nil, ErrAlreadyPlaying
	}

	log := p.log.With().Str("component", "playback").Logger()
	onPause := func() {
		log.Info().Msg("playback paused")
		observer.OnPause()
	}
	return &Session{
		score:      p.score,
		state:      p.state,
		observer:   observer,
		timer:      newPausingTimer(clock.NewTicker(p.score.TicksPerQuarter()), p.pollInterval, p.state, onPause, p.sleep),
		dispatcher: newObservingDispatcher(observer, p.state, p.forward, log),
		log:        log,
	}, nil
}

func (p *Player) Pause() error {
	current, ok := p.state.transition(Paused, Playing)
	if ok || current == Paused {
		return nil
	}
	return ErrNotPlaying
}

func (p *Player) Unpause() error {
	current, ok := p.state.transition(Playing, Paused)
	if ok || current == Playing {
		return nil
	}
	return ErrNotPlaying
}

func (p *Player) Stop() error {
	current, ok := p.state.transition(Stopped, Playing, Paused)
	if ok || current == Stopped {
		return nil
	}
	return ErrNotPlaying
}

func (p *Player) State() State {
	return p.state.load()
}

// IsStillPlaying is true while a session is playing or paused.
func (p *Player) IsStillPlaying() bool {
	switch p.state.load() {
	case Playing, Paused:
		return true
	default:
		return false
	}
}

// Elapsed is the time actually played by the current or last session.
func (p *Player) Elapsed() time.Duration {
	return p.state.loadElapsed()
}

func (p *Player) Remaining() time.Duration {
	return util.SaturatingSub(p.length, p.state.loadElapsed())
}

func (p *Player) Length() time.Duration {
	return p.length
}

func (p *Player) Score() *score.Score {
	return p.score
}

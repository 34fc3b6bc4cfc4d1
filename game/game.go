package game

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/catalog"
	"github.com/TCC-Pucpr/fed-inspirasom/model"
	"github.com/TCC-Pucpr/fed-inspirasom/playback"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Controller keeps the music currently being played and routes control
// requests to it. Only one game runs at a time.
type Controller struct {
	catalog *catalog.Catalog
	opts    []playback.Option
	log     zerolog.Logger

	mu          sync.Mutex
	current     *Game
	lastOutcome string
}

// Game is one attempt at playing a music.
type Game struct {
	ID    string
	Music model.Music

	ctrl    *Controller
	player  *playback.Player
	session *playback.Session
	notes   atomic.Int64
}

func New(c *catalog.Catalog, log zerolog.Logger, opts ...playback.Option) *Controller {
	return &Controller{
		catalog: c,
		opts:    opts,
		log:     log.With().Str("component", "game").Logger(),
	}
}

func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Start loads a music and claims the playback for it. The returned game
// must be played with Play.
func (c *Controller) Start(musicID string, observer playback.Observer) (*Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.player.IsStillPlaying() {
		c.log.Warn().Str("music", musicID).Msg("start refused, a music is already being played")
		return nil, playback.ErrAlreadyPlaying
	}

	if observer == nil {
		observer = playback.ObserverFuncs{}
	}
	music, s, err := c.catalog.Score(musicID)
	if err != nil {
		c.log.Error().Err(err).Str("music", musicID).Msg("could not load music")
		return nil, err
	}

	g := &Game{
		ID:    uuid.New().String(),
		Music: music,
		ctrl:  c,
	}
	opts := append([]playback.Option(nil), c.opts...)
	opts = append(opts, playback.WithLogger(c.log.With().Str("attempt", g.ID).Logger()))
	g.player = playback.NewPlayer(s, opts...)
	g.session, err = g.player.Start(countingObserver{observer, &g.notes})
	if err != nil {
		return nil, err
	}

	c.current = g
	c.log.Info().Str("music", music.ID).Str("attempt", g.ID).Msg("music loaded, now playing")
	return g, nil
}

// Play runs the game on the calling goroutine and releases the controller
// once it ends.
func (g *Game) Play() (playback.Outcome, error) {
	outcome, err := g.session.Play()

	c := g.ctrl
	c.mu.Lock()
	if c.current == g {
		c.current = nil
	}
	if err != nil {
		c.lastOutcome = "error"
	} else {
		c.lastOutcome = outcome.String()
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Error().Err(err).Str("attempt", g.ID).Msg("game ended with an error")
	} else {
		c.log.Info().Str("attempt", g.ID).Str("outcome", outcome.String()).Msg("game ended")
	}
	return outcome, err
}

func (g *Game) Player() *playback.Player {
	return g.player
}

func (c *Controller) withPlayer(f func(p *playback.Player) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return playback.ErrNotPlaying
	}
	return f(c.current.player)
}

func (c *Controller) Pause() error {
	return c.withPlayer(func(p *playback.Player) error { return p.Pause() })
}

func (c *Controller) Resume() error {
	return c.withPlayer(func(p *playback.Player) error { return p.Unpause() })
}

func (c *Controller) Stop() error {
	return c.withPlayer(func(p *playback.Player) error { return p.Stop() })
}

func (c *Controller) Remaining() (time.Duration, error) {
	var remaining time.Duration
	err := c.withPlayer(func(p *playback.Player) error {
		remaining = p.Remaining()
		return nil
	})
	return remaining, err
}

// Length computes how long a music plays without playing it.
func (c *Controller) Length(musicID string) (time.Duration, error) {
	_, s, err := c.catalog.Score(musicID)
	if err != nil {
		return 0, err
	}
	return playback.TotalLength(s), nil
}

func (c *Controller) Status() model.GameStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := model.GameStatus{
		State:       playback.NotRunning.String(),
		LastOutcome: c.lastOutcome,
	}
	if g := c.current; g != nil {
		status.State = g.player.State().String()
		status.MusicID = g.Music.ID
		status.AttemptID = g.ID
		status.ElapsedSeconds = g.player.Elapsed().Seconds()
		status.RemainingSeconds = g.player.Remaining().Seconds()
		status.NotesPlayed = int(g.notes.Load())
	}
	return status
}

type countingObserver struct {
	playback.Observer
	notes *atomic.Int64
}

func (o countingObserver) OnNote(on bool, key uint8, velocity uint8) bool {
	if on {
		o.notes.Add(1)
	}
	return o.Observer.OnNote(on, key, velocity)
}

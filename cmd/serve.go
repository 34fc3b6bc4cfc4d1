package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/catalog"
	"github.com/TCC-Pucpr/fed-inspirasom/constants"
	"github.com/TCC-Pucpr/fed-inspirasom/game"
	"github.com/TCC-Pucpr/fed-inspirasom/midi"
	"github.com/TCC-Pucpr/fed-inspirasom/model"
	"github.com/TCC-Pucpr/fed-inspirasom/note"
	"github.com/TCC-Pucpr/fed-inspirasom/playback"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	serveDir    string
	serveAddr   string
	servePollMs int
)

func init() {
	serveCmd.Flags().StringVar(&serveDir, "dir", constants.GetMusicsDir(), "directory holding the music catalog")
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetListenAddr(), "address to listen on")
	serveCmd.Flags().IntVar(&servePollMs, "poll", int(constants.GetPollInterval()/time.Millisecond), "pause/stop polling interval in milliseconds")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the game control api",
	Long:  `Serves an http api to list the musics and start, pause, resume or stop the one being played.`,
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(serve())
	},
}

type server struct {
	ctrl *game.Controller
	log  zerolog.Logger
}

// NewRouter builds the handler of the control api.
func NewRouter(ctrl *game.Controller, log zerolog.Logger) http.Handler {
	s := &server{ctrl: ctrl, log: log.With().Str("component", "http").Logger()}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/musics", s.handleList).Methods("GET")
	router.HandleFunc("/musics/{id}/length", s.handleLength).Methods("GET")
	router.HandleFunc("/game", s.handleStatus).Methods("GET")
	router.HandleFunc("/game/{id}/start", s.handleStart).Methods("POST")
	router.HandleFunc("/game/pause", s.handleControl(ctrl.Pause)).Methods("POST")
	router.HandleFunc("/game/resume", s.handleControl(ctrl.Resume)).Methods("POST")
	router.HandleFunc("/game/stop", s.handleControl(ctrl.Stop)).Methods("POST")
	router.Use(s.logRequests)

	return cors.Default().Handler(router)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrMusicNotFound):
		status = http.StatusNotFound
	case errors.Is(err, playback.ErrAlreadyPlaying), errors.Is(err, playback.ErrNotPlaying):
		status = http.StatusConflict
	case errors.Is(err, midi.ErrInvalidScore):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.MusicList{Files: s.ctrl.Catalog().List()})
}

func (s *server) handleLength(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	length, err := s.ctrl.Length(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.LengthResponse{ID: id, Seconds: uint64(length / time.Second)})
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Status())
}

func (s *server) handleStart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log := s.log.With().Str("music", id).Logger()
	observer := game.NewNoteObserver(log, constants.ProgressLogInterval, func(p note.Payload) bool {
		log.Debug().Interface("note", p).Msg("note")
		return true
	}, nil)

	g, err := s.ctrl.Start(id, observer)
	if err != nil {
		s.writeError(w, err)
		return
	}
	go g.Play()

	writeJSON(w, http.StatusAccepted, model.StartResponse{AttemptID: g.ID, MusicID: g.Music.ID})
}

func (s *server) handleControl(f func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.ctrl.Status())
	}
}

func serve() error {
	log := newLogger()

	c, err := catalog.Load(serveDir)
	if err != nil {
		return err
	}
	ctrl := game.New(c, log, playback.WithPollInterval(time.Duration(servePollMs)*time.Millisecond))

	log.Info().Str("addr", serveAddr).Int("musics", len(c.List())).Msg("serving")
	return http.ListenAndServe(serveAddr, NewRouter(ctrl, log))
}

//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/catalog"
	"github.com/TCC-Pucpr/fed-inspirasom/cmd"
	"github.com/TCC-Pucpr/fed-inspirasom/constants"
	"github.com/TCC-Pucpr/fed-inspirasom/game"
	"github.com/TCC-Pucpr/fed-inspirasom/model"
	"github.com/TCC-Pucpr/fed-inspirasom/playback"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// one second per note
func writeSong(t *testing.T, path string, keys ...uint8) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(60))
	for _, key := range keys {
		tr.Add(0, gomidi.NoteOn(0, key, 100))
		tr.Add(96, gomidi.NoteOff(0, key))
	}
	tr.Close(0)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func newServer(t *testing.T) *httptest.Server {
	dir := t.TempDir()
	list := "files:\n  - {id: scale, name: Scale, file: scale.mid}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.CatalogFile), []byte(list), 0644))
	writeSong(t, filepath.Join(dir, "scale.mid"), 60, 62, 64)

	c, err := catalog.Load(dir)
	require.NoError(t, err)
	ctrl := game.New(c, zerolog.Nop(), playback.WithPollInterval(5*time.Millisecond))

	srv := httptest.NewServer(cmd.NewRouter(ctrl, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url string, out any) int {
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestListAndLengthE2E(t *testing.T) {
	srv := newServer(t)
	assert := assert.New(t)

	var list model.MusicList
	assert.Equal(http.StatusOK, call(t, http.MethodGet, srv.URL+"/musics", &list))
	assert.Equal([]model.Music{{ID: "scale", Name: "Scale", File: "scale.mid"}}, list.Files)

	var length model.LengthResponse
	assert.Equal(http.StatusOK, call(t, http.MethodGet, srv.URL+"/musics/scale/length", &length))
	assert.Equal(model.LengthResponse{ID: "scale", Seconds: 3}, length)

	var failure model.ErrorResponse
	assert.Equal(http.StatusNotFound, call(t, http.MethodGet, srv.URL+"/musics/nope/length", &failure))
	assert.NotEmpty(failure.Error)
}

func TestGameLifecycleE2E(t *testing.T) {
	srv := newServer(t)
	assert := assert.New(t)

	assert.Equal(http.StatusConflict, call(t, http.MethodPost, srv.URL+"/game/pause", nil))

	var started model.StartResponse
	require.Equal(t, http.StatusAccepted, call(t, http.MethodPost, srv.URL+"/game/scale/start", &started))
	assert.Equal("scale", started.MusicID)
	assert.NotEmpty(started.AttemptID)

	assert.Equal(http.StatusConflict, call(t, http.MethodPost, srv.URL+"/game/scale/start", nil))

	var status model.GameStatus
	assert.Equal(http.StatusOK, call(t, http.MethodPost, srv.URL+"/game/pause", &status))
	assert.Equal("paused", status.State)
	assert.Equal(started.AttemptID, status.AttemptID)

	assert.Equal(http.StatusOK, call(t, http.MethodPost, srv.URL+"/game/resume", &status))
	assert.Equal("playing", status.State)

	assert.Equal(http.StatusOK, call(t, http.MethodPost, srv.URL+"/game/stop", &status))

	assert.Eventually(func() bool {
		var s model.GameStatus
		call(t, http.MethodGet, srv.URL+"/game", &s)
		return s.State == "not_running" && s.LastOutcome == "interrupted"
	}, time.Second, 10*time.Millisecond)

	assert.Equal(http.StatusConflict, call(t, http.MethodPost, srv.URL+"/game/stop", nil))
}

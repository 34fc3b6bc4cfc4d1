package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TCC-Pucpr/fed-inspirasom/catalog"
	"github.com/TCC-Pucpr/fed-inspirasom/midi"
	"github.com/TCC-Pucpr/fed-inspirasom/model"
	"github.com/TCC-Pucpr/fed-inspirasom/playback"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorStatus(t *testing.T) {
	s := &server{log: zerolog.Nop()}
	cases := []struct {
		err    error
		status int
	}{
		{catalog.ErrMusicNotFound, http.StatusNotFound},
		{fmt.Errorf("loading: %w", midi.ErrInvalidScore), http.StatusBadRequest},
		{playback.ErrAlreadyPlaying, http.StatusConflict},
		{playback.ErrNotPlaying, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		w := httptest.NewRecorder()
		s.writeError(w, c.err)

		assert.Equal(t, c.status, w.Code, c.err.Error())
		var body model.ErrorResponse
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, c.err.Error(), body.Error)
	}
}

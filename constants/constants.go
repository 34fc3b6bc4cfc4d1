package constants

import (
	"os"
	"strconv"
	"time"
)

func GetMusicsDir() string {
	path := os.Getenv("MUSICS_PATH")
	if path != "" {
		return path
	}
	return "./resources/musics"
}

// GetPollInterval is the polling slice of the playback timer.
func GetPollInterval() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("POLL_INTERVAL_MS"))
	if err != nil || ms <= 0 {
		return DefaultPollIntervalMs * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func GetLogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		return level
	}
	return "info"
}

func GetListenAddr() string {
	addr := os.Getenv("LISTEN_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetMidiOutPort is the name prefix of the output port to forward notes
// to. Empty disables forwarding.
func GetMidiOutPort() string {
	return os.Getenv("MIDI_OUT_PORT")
}

const DefaultPollIntervalMs = 33

const CatalogFile = "data.yaml"

// debounce window of the progress log when serving
const ProgressLogInterval = 500 * time.Millisecond

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/TCC-Pucpr/fed-inspirasom/constants"
	"github.com/TCC-Pucpr/fed-inspirasom/game"
	"github.com/TCC-Pucpr/fed-inspirasom/midi"
	"github.com/TCC-Pucpr/fed-inspirasom/note"
	"github.com/TCC-Pucpr/fed-inspirasom/playback"
	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	playPort   string
	playPollMs int
	playStrict bool
	playQuiet  bool
)

func init() {
	playCmd.Flags().StringVar(&playPort, "port", constants.GetMidiOutPort(), "also send the notes to the midi output port with this name")
	playCmd.Flags().IntVar(&playPollMs, "poll", int(constants.GetPollInterval()/time.Millisecond), "pause/stop polling interval in milliseconds")
	playCmd.Flags().BoolVar(&playStrict, "strict", false, "stop when a note cannot be played on the ocarina")
	playCmd.Flags().BoolVar(&playQuiet, "no-console", false, "do not open the control console, stop with ctrl+c")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Plays a midi file",
	Long:  `Plays a midi file printing every note. In the console: p pauses, r resumes, s stops, t prints the remaining time and q quits.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(play(args[0]))
	},
}

func openOutput(name string) (func(msg []byte) error, error) {
	out, err := gomidi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("can't find midi output port %q: %w", name, err)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("can't open midi output port %q: %w", name, err)
	}
	return func(msg []byte) error {
		return send(gomidi.Message(msg))
	}, nil
}

func play(path string) error {
	log := newLogger()

	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	opts := []playback.Option{
		playback.WithLogger(log),
		playback.WithPollInterval(time.Duration(playPollMs) * time.Millisecond),
	}
	if playPort != "" {
		defer gomidi.CloseDriver()
		send, err := openOutput(playPort)
		if err != nil {
			return err
		}
		opts = append(opts, playback.WithOutput(send))
	}
	player := playback.NewPlayer(s, opts...)

	var rl *readline.Instance
	var closeConsole sync.Once
	var out io.Writer = os.Stdout
	if !playQuiet {
		rl, err = readline.NewEx(&readline.Config{Prompt: "> "})
		if err != nil {
			return err
		}
		defer closeConsole.Do(func() { rl.Close() })
		out = rl.Stdout()
	}

	observer := game.NewNoteObserver(log, constants.ProgressLogInterval, func(p note.Payload) bool {
		fmt.Fprintln(out, p)
		return true
	}, func(state string) {
		fmt.Fprintln(out, state)
	})
	observer.IgnoreNoteErrors = !playStrict

	session, err := player.Start(observer)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Playing %s (%v)\n", path, player.Length())

	type result struct {
		outcome playback.Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := session.Play()
		done <- result{outcome, err}
		if rl != nil {
			closeConsole.Do(func() { rl.Close() })
		}
	}()

	if rl != nil {
		console(rl, player, log)
	} else {
		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
		go func() {
			for range interrupts {
				player.Stop()
			}
		}()
	}

	res := <-done
	if res.err != nil {
		return res.err
	}
	fmt.Fprintf(out, "Playback %s after %v\n", res.outcome, player.Elapsed().Round(time.Millisecond))
	return nil
}

// console reads control commands until the playback ends or the user
// leaves, in which case the playback is stopped.
func console(rl *readline.Instance, player *playback.Player, log zerolog.Logger) {
	for {
		line, err := rl.Readline()
		if err != nil {
			if !player.IsStillPlaying() {
				return
			}
			if err := player.Stop(); err != nil {
				log.Debug().Err(err).Msg("stop")
			}
			return
		}

		switch strings.TrimSpace(line) {
		case "p", "pause":
			err = player.Pause()
		case "r", "resume":
			err = player.Unpause()
		case "s", "stop":
			err = player.Stop()
		case "q", "quit":
			if err := player.Stop(); err != nil {
				log.Debug().Err(err).Msg("stop")
			}
			return
		case "t", "time":
			fmt.Fprintf(rl.Stdout(), "%v remaining\n", player.Remaining().Round(time.Second))
		case "":
		default:
			fmt.Fprintln(rl.Stdout(), "commands: p(ause) r(esume) s(top) t(ime) q(uit)")
		}
		if err != nil {
			fmt.Fprintln(rl.Stdout(), err)
		}
	}
}

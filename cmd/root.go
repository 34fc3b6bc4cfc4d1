package cmd

import (
	"github.com/TCC-Pucpr/fed-inspirasom/constants"
	"github.com/TCC-Pucpr/fed-inspirasom/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	prettyLog bool
)

var rootCmd = &cobra.Command{
	Use:   "inspirasom",
	Short: "Plays midi scores for the ocarina game",
	Long:  `Plays midi scores against the clock, forwarding every note to the game while it can be paused, resumed or stopped.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&prettyLog, "pretty", true, "human readable logs")
}

func newLogger() zerolog.Logger {
	return logging.New(logLevel, prettyLog)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

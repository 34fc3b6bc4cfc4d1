package cmd

import (
	"fmt"

	"github.com/TCC-Pucpr/fed-inspirasom/midi"
	"github.com/TCC-Pucpr/fed-inspirasom/playback"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lengthCmd)
}

var lengthCmd = &cobra.Command{
	Use:   "length <file.mid>",
	Short: "Prints how long a midi file plays",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := midi.ReadMidiFile(args[0])
		cobra.CheckErr(err)
		fmt.Printf("%v\n", playback.TotalLength(s))
	},
}

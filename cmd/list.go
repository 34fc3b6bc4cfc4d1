package cmd

import (
	"fmt"

	"github.com/TCC-Pucpr/fed-inspirasom/catalog"
	"github.com/TCC-Pucpr/fed-inspirasom/constants"
	"github.com/TCC-Pucpr/fed-inspirasom/playback"
	"github.com/spf13/cobra"
)

var listDir string

func init() {
	listCmd.Flags().StringVar(&listDir, "dir", constants.GetMusicsDir(), "musics directory")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the musics of the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.Load(listDir)
		cobra.CheckErr(err)
		for _, m := range c.List() {
			_, s, err := c.Score(m.ID)
			if err != nil {
				fmt.Printf("%s\t%s\t(%v)\n", m.ID, m.Name, err)
				continue
			}
			fmt.Printf("%s\t%s\t%v\n", m.ID, m.Name, playback.TotalLength(s))
		}
	},
}

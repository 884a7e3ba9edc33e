package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Chord sequencer engine",
	Long:  `Cadence is a chord and beat sequencer engine: chord parsing and voicing, pattern playback scheduling, and MIDI export.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "midisong",
	Short: "Converts MIDI files into .song files",
	Long: `Converts MIDI files into the .song text format: a list of
"start,duration,frequency" notes in seconds and Hz, split into files of
bounded size.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

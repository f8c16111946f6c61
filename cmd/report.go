package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jsphweid/midisong/chunk"
	"github.com/jsphweid/midisong/constants"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Creates a report",
	Long:  `Summarizes the .song files in a directory (default: the output directory).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := constants.GetOutDir()
		if len(args) == 1 {
			dir = args[0]
		}
		r, err := analyzeSongs(dir, constants.GetChunkBudget())
		if err != nil {
			return err
		}
		printReport(r)
		return nil
	},
}

type songsReport struct {
	numFiles     int
	numNotes     int
	numBytes     int64
	largestFile  string
	largestBytes int64
	overBudget   []string
	invalid      []string
}

var songFileRegexp = regexp.MustCompile(`\.song$`)

func analyzeSongs(dir string, budget int) (songsReport, error) {
	var report songsReport

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, errors.Wrap(err, "could not read dir")
	}

	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() || !songFileRegexp.MatchString(filename) {
			continue
		}
		dat, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return report, errors.Wrapf(err, "could not read %v", filename)
		}

		report.numFiles += 1
		size := int64(len(dat))
		report.numBytes += size
		if size > report.largestBytes {
			report.largestBytes = size
			report.largestFile = filename
		}
		if size > int64(budget) {
			report.overBudget = append(report.overBudget, filename)
		}

		notes, err := chunk.Parse(string(dat))
		if err != nil {
			report.invalid = append(report.invalid, filename)
			continue
		}
		report.numNotes += len(notes)
	}

	return report, nil
}

func printReport(r songsReport) {
	fmt.Printf("songFiles: %v\n", r.numFiles)
	fmt.Printf("notes: %v\n", r.numNotes)
	fmt.Printf("totalBytes: %v\n", r.numBytes)
	fmt.Printf("largest: %v (%v bytes)\n", r.largestFile, r.largestBytes)
	fmt.Printf("overBudget: %v\n", r.overBudget)
	fmt.Printf("invalid: %v\n", r.invalid)
}

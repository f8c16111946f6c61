package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/jsphweid/midisong/convert"
	"github.com/jsphweid/midisong/midi"
	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/note"
	"github.com/jsphweid/midisong/tempo"
	"github.com/spf13/cobra"
)

var inspectFlags struct {
	pairing    string
	tempoTrack int
	dump       bool
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectFlags.pairing, "pairing", "positional", "note pairing: positional or queue")
	f.IntVar(&inspectFlags.tempoTrack, "tempo-track", 0, "index of the track holding tempo changes")
	f.BoolVar(&inspectFlags.dump, "dump", false, "dump the tempo map and every rescaled note")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a midi file",
	Long:  `Prints the tempo map, note counts and pairing anomalies of a midi file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func countNoteEvents(track model.Track) int {
	var n int
	for _, evt := range track {
		if evt.Kind == model.NoteOn || evt.Kind == model.NoteOff {
			n++
		}
	}
	return n
}

func inspect(path string) error {
	pairing, err := note.ParsePairing(inspectFlags.pairing)
	if err != nil {
		return err
	}
	song, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("ticks per beat: %v\n", song.TicksPerBeat)
	fmt.Printf("tracks: %v\n", len(song.Tracks))
	for i, track := range song.Tracks {
		fmt.Printf("  track %v: %v events, %v note events\n", i, len(track), countNoteEvents(track))
	}

	opts := convert.DefaultOptions(song.TicksPerBeat)
	opts.Pairing = pairing
	opts.TempoTrack = inspectFlags.tempoTrack
	res, err := convert.Analyze(song.Tracks, opts)
	if err != nil {
		return err
	}

	fmt.Printf("tempo map:\n")
	for _, bp := range res.TempoMap {
		fmt.Printf("  tick %v: %v us/beat (%.2f bpm)\n", bp.AtTick, bp.MicrosecondsPerBeat, tempo.BPM(bp.MicrosecondsPerBeat))
	}
	fmt.Printf("notes: %v\n", len(res.Notes))
	if len(res.Notes) > 0 {
		last := res.Notes[len(res.Notes)-1]
		fmt.Printf("last note starts at %.2fs\n", last.Start)
	}
	fmt.Printf("anomalies: %v\n", len(res.Anomalies))
	for _, a := range res.Anomalies {
		fmt.Printf("  %v\n", a)
	}

	if inspectFlags.dump {
		spew.Dump(res.TempoMap, res.Notes)
	}
	return nil
}

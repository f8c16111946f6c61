package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/jsphweid/midisong/constants"
	"github.com/jsphweid/midisong/midi"
	"github.com/jsphweid/midisong/note"
	"github.com/jsphweid/midisong/store"
	"github.com/jsphweid/midisong/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var convertFlags struct {
	title      string
	outDir     string
	budget     int
	pairing    string
	tempoTrack int
	preview    int
	maxFiles   int
	s3         store.S3Config
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertFlags.title, "title", "t", "", "song title (default: input file name)")
	f.StringVarP(&convertFlags.outDir, "out", "o", constants.GetOutDir(), "output directory")
	f.IntVarP(&convertFlags.budget, "budget", "b", constants.GetChunkBudget(), "max characters per .song file")
	f.StringVar(&convertFlags.pairing, "pairing", "positional", "note pairing: positional or queue")
	f.IntVar(&convertFlags.tempoTrack, "tempo-track", 0, "index of the track holding tempo changes")
	f.IntVar(&convertFlags.preview, "preview", 0, "only keep the first N note events per track")
	f.IntVar(&convertFlags.maxFiles, "max", 0, "max number of midi files when converting a directory")
	f.StringVar(&convertFlags.s3.Bucket, "s3-bucket", "", "upload to this S3 bucket instead of --out")
	f.StringVar(&convertFlags.s3.Prefix, "s3-prefix", "", "key prefix for S3 uploads")
	f.StringVar(&convertFlags.s3.Region, "s3-region", "us-east-1", "S3 region")
	f.StringVar(&convertFlags.s3.Endpoint, "s3-endpoint", "", "custom S3 endpoint")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.mid|dir>",
	Short: "Converts midi files to .song files",
	Long: `Converts a midi file, or every midi file under a directory, to .song
files named after the title: <title>.song, or <title>_<i>.song when the
output needs more than one file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args[0])
	},
}

func makeSink() (store.Sink, error) {
	if convertFlags.s3.Bucket != "" {
		return store.NewS3Sink(convertFlags.s3)
	}
	return store.DirSink{Dir: convertFlags.outDir}, nil
}

func run(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	pairing, err := note.ParsePairing(convertFlags.pairing)
	if err != nil {
		return err
	}
	cfg := songConfig{
		Budget:     convertFlags.budget,
		Pairing:    pairing,
		TempoTrack: convertFlags.tempoTrack,
		Preview:    convertFlags.preview,
	}

	paths, err := util.GatherAllMidiPaths(path, convertFlags.maxFiles)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.Errorf("no midi files found in %v", path)
	}
	sink, err := makeSink()
	if err != nil {
		return err
	}

	single := len(paths) == 1
	used := make(map[string]string)
	for i, p := range paths {
		logrus.Infof("Processing %v of %v midi files", i+1, len(paths))
		title := util.TitleFromRelPath(path, p)
		if single && convertFlags.title != "" {
			title = convertFlags.title
		}
		// x.mid and x.midi in one directory
		if _, ok := used[title]; ok {
			title += "_" + strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), ".")
		}
		if prev, ok := used[title]; ok {
			logrus.WithField("file", p).Warnf("Skipping because title %v is already used by %v", title, prev)
			continue
		}
		used[title] = p

		err := convertFile(ctx, p, title, cfg, sink)
		if err != nil && single {
			return err
		}
		if err != nil {
			logrus.WithField("file", p).Warnf("Skipping because: %v", err)
		}
	}
	return nil
}

func convertFile(ctx context.Context, path string, title string, cfg songConfig, sink store.Sink) error {
	logger := logrus.WithFields(logrus.Fields{"file": path, "title": title})

	song, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	files, res, err := convertSong(song, title, cfg, logger)
	if err != nil {
		return errors.Wrapf(err, "could not convert %v", path)
	}
	if err := sink.Write(ctx, title, files); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"notes":     len(res.Notes),
		"files":     len(files),
		"anomalies": len(res.Anomalies),
	}).Info("converted")
	return nil
}

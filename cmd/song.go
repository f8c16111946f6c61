package cmd

import (
	"github.com/jsphweid/midisong/convert"
	"github.com/jsphweid/midisong/file"
	"github.com/jsphweid/midisong/midi"
	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/note"
	"github.com/jsphweid/midisong/sample"
	"github.com/sirupsen/logrus"
)

type songConfig struct {
	Budget     int
	Pairing    note.Pairing
	TempoTrack int
	Preview    int
}

func (c songConfig) options(song *midi.Song, logger logrus.FieldLogger) convert.Options {
	return convert.Options{
		TicksPerBeat: song.TicksPerBeat,
		Budget:       c.Budget,
		Pairing:      c.Pairing,
		TempoTrack:   c.TempoTrack,
		Logger:       logger,
	}
}

// convertSong runs the pipeline on a decoded file and names its chunks.
func convertSong(song *midi.Song, title string, cfg songConfig, logger logrus.FieldLogger) ([]model.SongFile, *convert.Result, error) {
	tracks := sample.Take(song.Tracks, cfg.Preview)
	res, err := convert.Convert(tracks, cfg.options(song, logger))
	if err != nil {
		return nil, nil, err
	}
	return file.CreateSongFiles(title, res.Chunks), res, nil
}

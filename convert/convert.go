package convert

import (
	"sync"

	"github.com/jsphweid/midisong/chunk"
	"github.com/jsphweid/midisong/constants"
	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/note"
	"github.com/jsphweid/midisong/rescale"
	"github.com/jsphweid/midisong/tempo"
	"github.com/jsphweid/midisong/timeline"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Options struct {
	TicksPerBeat uint16
	// Budget is the maximum number of characters per chunk.
	Budget     int
	Pairing    note.Pairing
	TempoTrack int
	Logger     logrus.FieldLogger
}

func DefaultOptions(ticksPerBeat uint16) Options {
	return Options{
		TicksPerBeat: ticksPerBeat,
		Budget:       constants.GetChunkBudget(),
		Pairing:      note.Positional,
	}
}

type Result struct {
	TempoMap  model.TempoMap
	Notes     []model.RescaledNote
	Chunks    []model.SongChunk
	Anomalies []note.Anomaly
}

type trackResult struct {
	timed     []model.TimedEvent
	notes     []model.Note
	anomalies []note.Anomaly
}

// processTracks builds timelines and pairs notes for every track in
// parallel. Results keep track order.
func processTracks(tracks []model.Track, mode note.Pairing) []trackResult {
	res := make([]trackResult, len(tracks))
	var wg sync.WaitGroup
	for i, track := range tracks {
		wg.Add(1)
		go func(i int, track model.Track) {
			defer wg.Done()
			timed := timeline.Build(track)
			notes, anomalies := note.Pair(i, timed, mode)
			res[i] = trackResult{timed: timed, notes: notes, anomalies: anomalies}
		}(i, track)
	}
	wg.Wait()
	return res
}

// Analyze runs every stage up to rescaling.
func Analyze(tracks []model.Track, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.TempoTrack < 0 || opts.TempoTrack >= len(tracks) {
		return nil, errors.Wrapf(tempo.ErrMissingTempo, "tempo track %v out of %v tracks", opts.TempoTrack, len(tracks))
	}

	processed := processTracks(tracks, opts.Pairing)

	tempoMap, err := tempo.ExtractMap(processed[opts.TempoTrack].timed)
	if err != nil {
		return nil, errors.Wrapf(err, "tempo track %v", opts.TempoTrack)
	}

	var notes []model.Note
	var anomalies []note.Anomaly
	for i, p := range processed {
		if len(p.notes) == 0 && len(p.anomalies) == 0 {
			log.WithField("track", i).Debug("skipping track without notes")
			continue
		}
		notes = append(notes, p.notes...)
		for _, a := range p.anomalies {
			log.WithFields(logrus.Fields{
				"track": a.Track,
				"pitch": a.Pitch,
				"on":    a.On,
				"off":   a.Off,
			}).Warn(a.String())
		}
		anomalies = append(anomalies, p.anomalies...)
	}

	rescaled, err := rescale.Rescale(notes, tempoMap, opts.TicksPerBeat)
	if err != nil {
		return nil, err
	}

	return &Result{TempoMap: tempoMap, Notes: rescaled, Anomalies: anomalies}, nil
}

// Convert runs the whole pipeline. Nothing is returned on error so callers
// never see partial output.
func Convert(tracks []model.Track, opts Options) (*Result, error) {
	res, err := Analyze(tracks, opts)
	if err != nil {
		return nil, err
	}
	chunks, err := chunk.Serialize(res.Notes, opts.Budget)
	if err != nil {
		return nil, err
	}
	res.Chunks = chunks
	return res, nil
}

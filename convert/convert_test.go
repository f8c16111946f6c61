package convert

import (
	"io"
	"strings"
	"testing"

	"github.com/jsphweid/midisong/chunk"
	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/note"
	"github.com/jsphweid/midisong/tempo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietOptions(ticksPerBeat uint16, budget int) Options {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return Options{TicksPerBeat: ticksPerBeat, Budget: budget, Logger: logger}
}

func TestConvertSingleNote(t *testing.T) {
	tracks := []model.Track{{
		{Kind: model.SetTempo, TempoValue: 500000},
		{Kind: model.NoteOn, Pitch: 69, Velocity: 100, DeltaTicks: 0},
		{Kind: model.NoteOff, Pitch: 69, Velocity: 0, DeltaTicks: 480},
	}}
	opts := quietOptions(480, 26000)

	res, err := Convert(tracks, opts)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.SongChunk{`{"0.00,0.50,440.00"}`}, res.Chunks)
	assert.Empty(res.Anomalies)
}

func TestConvertOneSecondNote(t *testing.T) {
	// one beat at 60 bpm
	tracks := []model.Track{
		{{Kind: model.SetTempo, TempoValue: 1000000}},
		{
			{Kind: model.NoteOn, Pitch: 69, Velocity: 100},
			{Kind: model.NoteOn, Pitch: 69, Velocity: 0, DeltaTicks: 480},
		},
	}

	res, err := Convert(tracks, quietOptions(480, 26000))
	require.NoError(t, err)

	assert.Equal(t, []model.SongChunk{`{"0.00,1.00,440.00"}`}, res.Chunks)
}

func TestConvertMergesTracksInStartOrder(t *testing.T) {
	tracks := []model.Track{
		{
			{Kind: model.SetTempo, TempoValue: 500000},
			{Kind: model.NoteOn, Pitch: 81, Velocity: 1, DeltaTicks: 960},
			{Kind: model.NoteOff, Pitch: 81, DeltaTicks: 480},
		},
		{},
		{
			{Kind: model.NoteOn, Pitch: 69, Velocity: 1},
			{Kind: model.NoteOff, Pitch: 69, DeltaTicks: 480},
			{Kind: model.NoteOn, Pitch: 69, Velocity: 1},
		},
	}

	res, err := Convert(tracks, quietOptions(480, 26000))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.SongChunk{`{"0.00,0.50,440.00","1.00,0.50,880.00"}`}, res.Chunks)
	assert.Equal([]note.Anomaly{{Track: 2, Pitch: 69, Kind: note.Unbalanced, On: 2, Off: 1}}, res.Anomalies)
}

func TestConvertIsDeterministicAndChunked(t *testing.T) {
	var tracks []model.Track
	for tr := 0; tr < 6; tr++ {
		track := model.Track{{Kind: model.SetTempo, TempoValue: 400000}}
		for i := 0; i < 100; i++ {
			pitch := uint8(40 + (i*7+tr)%40)
			track = append(track,
				model.RawEvent{Kind: model.NoteOn, Pitch: pitch, Velocity: 64, DeltaTicks: uint32(tr)},
				model.RawEvent{Kind: model.NoteOff, Pitch: pitch, DeltaTicks: 120},
			)
		}
		tracks = append(tracks, track)
	}
	opts := quietOptions(96, 1000)

	first, err := Convert(tracks, opts)
	require.NoError(t, err)
	second, err := Convert(tracks, opts)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(first.Chunks, second.Chunks)
	assert.Greater(len(first.Chunks), 1)

	var bodies []string
	for _, c := range first.Chunks {
		assert.LessOrEqual(len(c), 1000)
		bodies = append(bodies, c[1:len(c)-1])
	}
	whole := chunk.Encode(first.Notes)
	assert.Equal(whole[1:len(whole)-1], strings.Join(bodies, ","))

	for i := 1; i < len(first.Notes); i++ {
		assert.LessOrEqual(first.Notes[i-1].Start, first.Notes[i].Start)
	}
}

func TestConvertRequiresTempo(t *testing.T) {
	tracks := []model.Track{{
		{Kind: model.NoteOn, Pitch: 69, Velocity: 100},
		{Kind: model.NoteOff, Pitch: 69, DeltaTicks: 480},
	}}

	res, err := Convert(tracks, quietOptions(480, 26000))

	assert := assert.New(t)
	assert.Nil(res)
	assert.True(errors.Is(err, tempo.ErrMissingTempo))

	_, err = Convert(nil, quietOptions(480, 26000))
	assert.True(errors.Is(err, tempo.ErrMissingTempo))
}

func TestConvertFailsWithoutOutputOnUncuttableNote(t *testing.T) {
	tracks := []model.Track{{
		{Kind: model.SetTempo, TempoValue: 500000},
		{Kind: model.NoteOn, Pitch: 69, Velocity: 100},
		{Kind: model.NoteOff, Pitch: 69, DeltaTicks: 480},
		{Kind: model.NoteOn, Pitch: 69, Velocity: 100},
		{Kind: model.NoteOff, Pitch: 69, DeltaTicks: 480},
	}}

	res, err := Convert(tracks, quietOptions(480, 12))

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, chunk.ErrChunkBoundaryNotFound))
}

func TestConvertQueuePairing(t *testing.T) {
	// a stray note off precedes the note; positional pairing would close the
	// note immediately
	tracks := []model.Track{{
		{Kind: model.SetTempo, TempoValue: 500000},
		{Kind: model.NoteOff, Pitch: 69},
		{Kind: model.NoteOn, Pitch: 69, Velocity: 100},
		{Kind: model.NoteOff, Pitch: 69, DeltaTicks: 192},
	}}
	opts := quietOptions(96, 26000)

	positional, err := Convert(tracks, opts)
	require.NoError(t, err)

	opts.Pairing = note.Queue
	queued, err := Convert(tracks, opts)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.SongChunk{`{"0.00,0.00,440.00"}`}, positional.Chunks)
	assert.Equal([]model.SongChunk{`{"0.00,1.00,440.00"}`}, queued.Chunks)
}

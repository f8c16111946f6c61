package note

import (
	"fmt"
	"testing"

	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/timeline"
	"github.com/stretchr/testify/assert"
)

func on(pitch uint8, delta uint32) model.RawEvent {
	return model.RawEvent{Kind: model.NoteOn, Pitch: pitch, Velocity: 100, DeltaTicks: delta}
}

func off(pitch uint8, delta uint32) model.RawEvent {
	return model.RawEvent{Kind: model.NoteOff, Pitch: pitch, DeltaTicks: delta}
}

// zero velocity note on, the usual running-status note off
func silentOn(pitch uint8, delta uint32) model.RawEvent {
	return model.RawEvent{Kind: model.NoteOn, Pitch: pitch, Velocity: 0, DeltaTicks: delta}
}

func TestFrequency(t *testing.T) {
	cases := map[uint8]string{
		69: "440.00",
		81: "880.00",
		57: "220.00",
		60: "261.63",
	}
	for pitch, want := range cases {
		t.Run(fmt.Sprintf("pitch %v", pitch), func(t *testing.T) {
			assert.Equal(t, want, fmt.Sprintf("%.2f", Frequency(pitch)))
		})
	}
}

func TestPairSingleNote(t *testing.T) {
	events := timeline.Build(model.Track{on(69, 0), silentOn(69, 480)})

	notes, anomalies := Pair(0, events, Positional)

	assert := assert.New(t)
	assert.Empty(anomalies)
	assert.Equal([]model.Note{{StartTick: 0, DurationTick: 480, FrequencyHz: 440}}, notes)
}

func TestPairIgnoresNonNoteEvents(t *testing.T) {
	events := timeline.Build(model.Track{
		{Kind: model.SetTempo, TempoValue: 500000},
		{Kind: model.Other, DeltaTicks: 10},
	})

	notes, anomalies := Pair(0, events, Positional)

	assert.Empty(t, notes)
	assert.Empty(t, anomalies)
}

func TestPairGroupsByPitchInAscendingOrder(t *testing.T) {
	events := timeline.Build(model.Track{
		on(72, 0), on(60, 0), off(72, 100), off(60, 20), on(72, 0), off(72, 50),
	})

	notes, _ := Pair(0, events, Positional)

	assert := assert.New(t)
	assert.Len(notes, 3)
	assert.Equal(model.Note{StartTick: 0, DurationTick: 120, FrequencyHz: Frequency(60)}, notes[0])
	assert.Equal(model.Note{StartTick: 0, DurationTick: 100, FrequencyHz: Frequency(72)}, notes[1])
	assert.Equal(model.Note{StartTick: 120, DurationTick: 50, FrequencyHz: Frequency(72)}, notes[2])
}

func TestPairTruncatesUnbalancedPitch(t *testing.T) {
	events := timeline.Build(model.Track{
		on(64, 0), off(64, 10), on(64, 10), off(64, 10), on(64, 10),
	})

	notes, anomalies := Pair(3, events, Positional)

	assert := assert.New(t)
	assert.Equal([]model.Note{
		{StartTick: 0, DurationTick: 10, FrequencyHz: Frequency(64)},
		{StartTick: 20, DurationTick: 10, FrequencyHz: Frequency(64)},
	}, notes)
	assert.Equal([]Anomaly{{Track: 3, Pitch: 64, Kind: Unbalanced, On: 3, Off: 2}}, anomalies)
}

func TestPairPositionalMismatchesOverlap(t *testing.T) {
	// on@0 on@10 off@20 off@100: positional pairs 0-20 and 10-100
	events := timeline.Build(model.Track{on(60, 0), on(60, 10), off(60, 10), off(60, 80)})

	notes, anomalies := Pair(0, events, Positional)

	assert := assert.New(t)
	assert.Empty(anomalies)
	assert.Equal(20.0, notes[0].DurationTick)
	assert.Equal(90.0, notes[1].DurationTick)
}

func TestPairQueueMatchesEarliestUnmatchedOn(t *testing.T) {
	// off@5 has nothing to close, the trailing on@200 never closes
	events := timeline.Build(model.Track{
		off(60, 5), on(60, 5), on(60, 10), off(60, 10), off(60, 80), on(60, 90),
	})

	notes, anomalies := Pair(1, events, Queue)

	assert := assert.New(t)
	assert.Equal([]model.Note{
		{StartTick: 10, DurationTick: 20, FrequencyHz: Frequency(60)},
		{StartTick: 20, DurationTick: 90, FrequencyHz: Frequency(60)},
	}, notes)
	assert.Equal([]Anomaly{{Track: 1, Pitch: 60, Kind: Unbalanced, On: 1, Off: 1}}, anomalies)
}

func TestPairDropsNegativeDurations(t *testing.T) {
	// positional pairing of an off that precedes its on
	events := timeline.Build(model.Track{off(60, 0), on(60, 50)})

	notes, anomalies := Pair(0, events, Positional)

	assert := assert.New(t)
	assert.Empty(notes)
	assert.Equal([]Anomaly{{Track: 0, Pitch: 60, Kind: NonPositiveDuration, On: 50, Off: 0}}, anomalies)
}

func TestPairKeepsZeroLengthNotes(t *testing.T) {
	events := timeline.Build(model.Track{on(60, 30), off(60, 0)})

	notes, anomalies := Pair(0, events, Positional)

	assert := assert.New(t)
	assert.Equal([]model.Note{{StartTick: 30, DurationTick: 0, FrequencyHz: Frequency(60)}}, notes)
	assert.Len(anomalies, 1)
	assert.Equal(NonPositiveDuration, anomalies[0].Kind)
}

func TestParsePairing(t *testing.T) {
	assert := assert.New(t)

	p, err := ParsePairing("")
	assert.NoError(err)
	assert.Equal(Positional, p)

	p, err = ParsePairing("queue")
	assert.NoError(err)
	assert.Equal(Queue, p)
	assert.Equal("queue", p.String())

	_, err = ParsePairing("stack")
	assert.Error(err)
}

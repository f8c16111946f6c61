package note

import (
	"fmt"
	"math"

	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/util"
	"github.com/pkg/errors"
)

// Pairing selects how note-off events are matched to note-on events of the
// same pitch.
type Pairing int

const (
	// Positional pairs the i-th on with the i-th off. Overlapping notes of
	// one pitch get mismatched.
	Positional Pairing = iota
	// Queue matches every off to the earliest unmatched on.
	Queue
)

func (p Pairing) String() string {
	if p == Queue {
		return "queue"
	}
	return "positional"
}

func ParsePairing(s string) (Pairing, error) {
	switch s {
	case "", "positional":
		return Positional, nil
	case "queue":
		return Queue, nil
	}
	return Positional, errors.Errorf("unknown pairing %q, want positional or queue", s)
}

type AnomalyKind int

const (
	Unbalanced AnomalyKind = iota
	NonPositiveDuration
)

// Anomaly describes a data quality problem absorbed while pairing. For
// Unbalanced, On and Off are the event counts (positional) or the counts left
// unmatched (queue). For NonPositiveDuration they are the offending ticks.
type Anomaly struct {
	Track int
	Pitch uint8
	Kind  AnomalyKind
	On    uint64
	Off   uint64
}

func (a Anomaly) String() string {
	if a.Kind == NonPositiveDuration {
		return fmt.Sprintf("track %v pitch %v: note off at tick %v is not after note on at tick %v", a.Track, a.Pitch, a.Off, a.On)
	}
	return fmt.Sprintf("track %v pitch %v: %v note ons vs %v note offs", a.Track, a.Pitch, a.On, a.Off)
}

// Frequency is 12-tone equal temperament with A4 (69) at 440 Hz.
func Frequency(pitch uint8) float64 {
	return 440 * math.Pow(2, (float64(pitch)-69)/12)
}

// Pair turns one track's events into notes, pitch by pitch in ascending
// order. Excess ons or offs are dropped and reported; pairs whose off comes
// before their on are dropped and reported, zero length notes are kept.
func Pair(track int, events []model.TimedEvent, mode Pairing) ([]model.Note, []Anomaly) {
	var notes []model.Note
	var anomalies []Anomaly

	b := bucketize(events)
	for _, pitch := range sortedPitches(b) {
		var pairs [][2]model.TimedEvent
		var unbalanced *Anomaly
		if mode == Queue {
			pairs, unbalanced = pairQueue(b[pitch])
		} else {
			pairs, unbalanced = pairPositional(b[pitch])
		}
		if unbalanced != nil {
			unbalanced.Track = track
			unbalanced.Pitch = pitch
			anomalies = append(anomalies, *unbalanced)
		}

		freq := Frequency(pitch)
		for _, p := range pairs {
			on, off := p[0].AbsoluteTicks, p[1].AbsoluteTicks
			if off < on {
				anomalies = append(anomalies, Anomaly{Track: track, Pitch: pitch, Kind: NonPositiveDuration, On: on, Off: off})
				continue
			}
			if off == on {
				anomalies = append(anomalies, Anomaly{Track: track, Pitch: pitch, Kind: NonPositiveDuration, On: on, Off: off})
			}
			notes = append(notes, model.Note{
				StartTick:    float64(on),
				DurationTick: float64(off - on),
				FrequencyHz:  freq,
			})
		}
	}

	return notes, anomalies
}

func pairPositional(b *pitchBucket) ([][2]model.TimedEvent, *Anomaly) {
	n := util.Min(len(b.ons), len(b.offs))
	pairs := make([][2]model.TimedEvent, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, [2]model.TimedEvent{b.ons[i], b.offs[i]})
	}
	if len(b.ons) != len(b.offs) {
		return pairs, &Anomaly{Kind: Unbalanced, On: uint64(len(b.ons)), Off: uint64(len(b.offs))}
	}
	return pairs, nil
}

func pairQueue(b *pitchBucket) ([][2]model.TimedEvent, *Anomaly) {
	var pairs [][2]model.TimedEvent
	var pending []model.TimedEvent
	var orphanOffs uint64
	for _, evt := range b.events {
		if evt.IsNoteOn() {
			pending = append(pending, evt)
			continue
		}
		if len(pending) == 0 {
			orphanOffs++
			continue
		}
		pairs = append(pairs, [2]model.TimedEvent{pending[0], evt})
		pending = pending[1:]
	}
	if len(pending) > 0 || orphanOffs > 0 {
		return pairs, &Anomaly{Kind: Unbalanced, On: uint64(len(pending)), Off: orphanOffs}
	}
	return pairs, nil
}

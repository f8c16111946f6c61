package rescale

import (
	"sort"

	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/tempo"
	"github.com/pkg/errors"
)

var ErrInvalidTicksPerBeat = errors.New("ticks per beat must be positive")

// Accumulator is the state carried from one tempo breakpoint to the next.
type Accumulator struct {
	TicksPerSecond float64
}

// Rescale converts notes from ticks to seconds under tempoMap and returns
// them ordered by start time. The input slice is not modified.
func Rescale(notes []model.Note, tempoMap model.TempoMap, ticksPerBeat uint16) ([]model.RescaledNote, error) {
	if ticksPerBeat == 0 {
		return nil, ErrInvalidTicksPerBeat
	}
	if len(tempoMap) == 0 {
		return nil, tempo.ErrMissingTempo
	}

	sorted := make([]model.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTick < sorted[j].StartTick
	})

	res, acc := Initial(sorted, tempoMap[0], ticksPerBeat)
	for _, bp := range tempoMap[1:] {
		acc = Apply(res, sorted, acc, bp, ticksPerBeat)
	}

	// A tempo speed up can pull a rescaled suffix in front of notes that
	// precede the breakpoint.
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Start < res[j].Start
	})
	return res, nil
}

// Initial divides every note by the ticks per second of the first tempo.
func Initial(sorted []model.Note, first model.TempoBreakpoint, ticksPerBeat uint16) ([]model.RescaledNote, Accumulator) {
	tps := tempo.TicksPerSecond(ticksPerBeat, first.MicrosecondsPerBeat)
	res := make([]model.RescaledNote, 0, len(sorted))
	for _, n := range sorted {
		res = append(res, model.RescaledNote{
			Start:       n.StartTick / tps,
			Duration:    n.DurationTick / tps,
			FrequencyHz: n.FrequencyHz,
		})
	}
	return res, Accumulator{TicksPerSecond: tps}
}

// Apply scales every note starting at or after bp by the ratio of the old to
// the new ticks per second, in place. res and sorted are parallel: sorted
// holds the tick-space notes res was computed from. The split is located on
// tick positions, which orders the suffix identically to its rescaled
// values without accumulated float error.
func Apply(res []model.RescaledNote, sorted []model.Note, acc Accumulator, bp model.TempoBreakpoint, ticksPerBeat uint16) Accumulator {
	at := float64(bp.AtTick)
	split := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].StartTick >= at
	})

	newTps := tempo.TicksPerSecond(ticksPerBeat, bp.MicrosecondsPerBeat)
	ratio := acc.TicksPerSecond / newTps
	for i := split; i < len(res); i++ {
		res[i].Start *= ratio
		res[i].Duration *= ratio
	}

	return Accumulator{TicksPerSecond: newTps}
}

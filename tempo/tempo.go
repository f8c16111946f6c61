package tempo

import (
	"github.com/jsphweid/midisong/model"
	"github.com/pkg/errors"
)

const microsecondsPerMinute = 60_000_000

var ErrMissingTempo = errors.New("no set tempo event in tempo track")

// ExtractMap collects the SetTempo events of the tempo-bearing track. The
// input is time ordered so the breakpoints come out sorted by tick.
func ExtractMap(events []model.TimedEvent) (model.TempoMap, error) {
	var res model.TempoMap
	for _, evt := range events {
		if evt.Kind != model.SetTempo {
			continue
		}
		if evt.TempoValue == 0 {
			return nil, errors.Errorf("set tempo at tick %v has zero microseconds per beat", evt.AbsoluteTicks)
		}
		res = append(res, model.TempoBreakpoint{
			MicrosecondsPerBeat: evt.TempoValue,
			AtTick:              evt.AbsoluteTicks,
		})
	}
	if len(res) == 0 {
		return nil, ErrMissingTempo
	}
	return res, nil
}

// BPM converts microseconds per quarter note into beats per minute.
func BPM(microsecondsPerBeat uint32) float64 {
	return microsecondsPerMinute / float64(microsecondsPerBeat)
}

func TicksPerSecond(ticksPerBeat uint16, microsecondsPerBeat uint32) float64 {
	return float64(ticksPerBeat) * BPM(microsecondsPerBeat) / 60
}

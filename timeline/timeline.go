package timeline

import "github.com/jsphweid/midisong/model"

// Build attaches absolute tick timestamps to every event of a track.
func Build(track model.Track) []model.TimedEvent {
	res := make([]model.TimedEvent, 0, len(track))
	var absTicks uint64
	for _, evt := range track {
		absTicks += uint64(evt.DeltaTicks)
		res = append(res, model.TimedEvent{RawEvent: evt, AbsoluteTicks: absTicks})
	}
	return res
}

func BuildAll(tracks []model.Track) [][]model.TimedEvent {
	res := make([][]model.TimedEvent, 0, len(tracks))
	for _, track := range tracks {
		res = append(res, Build(track))
	}
	return res
}

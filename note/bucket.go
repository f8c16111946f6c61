package note

import (
	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/util"
)

// pitchBucket holds one pitch's note events in time order, split by whether
// they start or end a note.
type pitchBucket struct {
	ons    []model.TimedEvent
	offs   []model.TimedEvent
	events []model.TimedEvent
}

type buckets = map[uint8]*pitchBucket

func bucketize(events []model.TimedEvent) buckets {
	res := make(buckets)
	for _, evt := range events {
		if !evt.IsNoteEvent() {
			continue
		}
		b, ok := res[evt.Pitch]
		if !ok {
			b = &pitchBucket{}
			res[evt.Pitch] = b
		}
		b.events = append(b.events, evt)
		if evt.IsNoteOn() {
			b.ons = append(b.ons, evt)
		} else {
			b.offs = append(b.offs, evt)
		}
	}
	return res
}

func sortedPitches(b buckets) []uint8 {
	return util.GetKeysSorted(b)
}

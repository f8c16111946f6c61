package sample

import "github.com/jsphweid/midisong/model"

// Take keeps every non-note event and the first maxNoteEvents note on/off
// events of each track. Deltas of dropped events are carried into the next
// kept event so timing is unchanged. maxNoteEvents of 0 keeps everything.
func Take(tracks []model.Track, maxNoteEvents int) []model.Track {
	if maxNoteEvents <= 0 {
		return tracks
	}

	res := make([]model.Track, 0, len(tracks))
	for _, track := range tracks {
		var newTrack model.Track
		var numNoteOnOff int
		var carry uint32
		for _, evt := range track {
			isNote := evt.Kind == model.NoteOn || evt.Kind == model.NoteOff
			if isNote && numNoteOnOff >= maxNoteEvents {
				carry += evt.DeltaTicks
				continue
			}
			if isNote {
				numNoteOnOff += 1
			}
			evt.DeltaTicks += carry
			carry = 0
			newTrack = append(newTrack, evt)
		}
		res = append(res, newTrack)
	}
	return res
}

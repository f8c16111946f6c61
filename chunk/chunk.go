package chunk

import (
	"strings"

	"github.com/jsphweid/midisong/model"
	"github.com/pkg/errors"
)

var (
	ErrInvalidBudget         = errors.New("chunk budget must be positive")
	ErrChunkBoundaryNotFound = errors.New("no note boundary fits in chunk budget")
)

const boundary = `",`

// Split cuts an encoded payload into chunks of at most budget characters.
// Cuts only happen between two notes, so every chunk is itself a valid
// payload, and joining the chunk bodies with commas gives back the original
// body.
func Split(encoded string, budget int) ([]model.SongChunk, error) {
	if budget <= 0 {
		return nil, ErrInvalidBudget
	}

	var res []model.SongChunk
	rest := encoded
	for len(rest) > budget {
		// the chunk keeps the closing quote and gains a brace: cut+2 <= budget
		cut := strings.LastIndex(rest[:budget], boundary)
		if cut < 0 {
			return nil, errors.Wrapf(ErrChunkBoundaryNotFound, "chunk %v, budget %v", len(res), budget)
		}
		res = append(res, rest[:cut+1]+"}")
		rest = "{" + rest[cut+len(boundary):]
	}
	res = append(res, rest)
	return res, nil
}

// Serialize encodes notes and splits the result.
func Serialize(notes []model.RescaledNote, budget int) ([]model.SongChunk, error) {
	return Split(Encode(notes), budget)
}

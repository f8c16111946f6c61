package file

import (
	"fmt"

	"github.com/jsphweid/midisong/constants"
	"github.com/jsphweid/midisong/model"
)

// Name is the file name of chunk i out of total: "<title>.song" when there is
// only one chunk, otherwise "<title>_<i>.song".
func Name(title string, i int, total int) string {
	if total == 1 {
		return title + constants.SongExt
	}
	return fmt.Sprintf("%v_%d%v", title, i, constants.SongExt)
}

func CreateSongFiles(title string, chunks []model.SongChunk) []model.SongFile {
	res := make([]model.SongFile, 0, len(chunks))
	for i, c := range chunks {
		res = append(res, model.SongFile{Name: Name(title, i, len(chunks)), Content: c})
	}
	return res
}

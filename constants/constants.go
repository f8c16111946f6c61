package constants

import (
	"os"
	"strconv"
)

const DefaultChunkBudget = 26000

const SongExt = ".song"

func GetOutDir() string {
	path := os.Getenv("SONG_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

// GetChunkBudget is the maximum number of characters in one .song file.
func GetChunkBudget() int {
	budget, err := strconv.Atoi(os.Getenv("SONG_CHUNK_BUDGET"))
	if err != nil || budget <= 0 {
		return DefaultChunkBudget
	}
	return budget
}

package model

// SongChunk is one size-bounded `{...}` payload of the song encoding.
type SongChunk = string

type SongFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

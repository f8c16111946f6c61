package model

type ConvertResponse struct {
	Title string     `json:"title"`
	Notes int        `json:"notes"`
	Files []SongFile `json:"files"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

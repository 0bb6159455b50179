package dto

type SaveSongRequest struct {
	Title   string  `json:"title"`
	Artist  string  `json:"artist"`
	Content string  `json:"content"`
	Key     *string `json:"key,omitempty"`
}

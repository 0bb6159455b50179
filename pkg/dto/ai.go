package dto

type FormatSongRequest struct {
	Content string `json:"content"`
}

type FormatSongResponse struct {
	Content string `json:"content"`
}

type ComposeSongRequest struct {
	Key        string `json:"key"`
	Scale      string `json:"scale"`
	Style      string `json:"style"`
	Mood       string `json:"mood"`
	Speed      string `json:"speed"`
	Complexity string `json:"complexity"`
	Topics     string `json:"topics"`
}

type ComposeSongResponse struct {
	Content string `json:"content"`
}

type SetlistIdeasRequest struct {
	Genre string `json:"genre"`
}

type SetlistIdeasResponse struct {
	Titles []string `json:"titles"`
}

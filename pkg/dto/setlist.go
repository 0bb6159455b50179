package dto

import "github.com/google/uuid"

type SaveSetlistRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Songs       []uuid.UUID `json:"songs"`
}

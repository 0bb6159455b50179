package dto

import "github.com/google/uuid"

type SharedSongsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

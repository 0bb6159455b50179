package dto

import "github.com/google/uuid"

type WorkspaceResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Personal bool      `json:"personal"`
	Role     string    `json:"role"`
}

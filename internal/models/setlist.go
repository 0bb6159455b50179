package models

import (
	"time"

	"github.com/google/uuid"
)

// Setlist is an ordered list of song ids. Duplicates and references to
// deleted songs are allowed; resolution filters dangling ids at read time.
type Setlist struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Songs       []uuid.UUID `json:"songs"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	WorkspaceID *uuid.UUID  `json:"workspace_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

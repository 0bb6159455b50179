package models

import (
	"time"

	"github.com/google/uuid"
)

// Song holds freeform lyrics and chords in Content. Edits are upserts keyed
// by the stable ID, which clients may generate themselves.
type Song struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Artist      string     `json:"artist"`
	Content     string     `json:"content"`
	Key         *string    `json:"key,omitempty"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	WorkspaceID *uuid.UUID `json:"workspace_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

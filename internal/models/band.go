package models

import (
	"time"

	"github.com/google/uuid"
)

// Band member roles.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
	RoleGuest  = "GUEST"
)

type Band struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
	Picture   *string   `json:"picture,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BandMember struct {
	ID       uuid.UUID `json:"id"`
	BandID   uuid.UUID `json:"band_id"`
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	User     *User     `json:"user,omitempty"`
}

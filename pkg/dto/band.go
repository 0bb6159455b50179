package dto

import "github.com/google/uuid"

type CreateBandRequest struct {
	Name string `json:"name"`
}

type BandResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
	Picture   *string   `json:"picture,omitempty"`
	Role      string    `json:"role"`
}

type BandMemberResponse struct {
	ID     uuid.UUID    `json:"id"`
	UserID uuid.UUID    `json:"user_id"`
	Role   string       `json:"role"`
	User   UserResponse `json:"user"`
}

type InviteMemberRequest struct {
	Email string `json:"email"`
}

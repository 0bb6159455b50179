package models

import (
	"time"

	"github.com/google/uuid"
)

// Rehearsal statuses. There is no exposed transition into COMPLETED; the
// value exists so stored entities carrying it round-trip unchanged.
const (
	StatusProposed  = "PROPOSED"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
)

// RehearsalOption is one proposed date/time/location. VoterIDs is treated as
// a set: ToggleVote adds or removes a user, never duplicates one.
type RehearsalOption struct {
	ID       uuid.UUID   `json:"id"`
	Date     string      `json:"date"`
	Time     string      `json:"time"`
	Location string      `json:"location"`
	VoterIDs []uuid.UUID `json:"voter_ids"`
}

func (o *RehearsalOption) HasVoter(userID uuid.UUID) bool {
	for _, id := range o.VoterIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleVote casts userID's vote on the option, or withdraws it if already
// cast. Calling it twice restores the original voter set.
func (o *RehearsalOption) ToggleVote(userID uuid.UUID) {
	for i, id := range o.VoterIDs {
		if id == userID {
			o.VoterIDs = append(o.VoterIDs[:i], o.VoterIDs[i+1:]...)
			return
		}
	}
	o.VoterIDs = append(o.VoterIDs, userID)
}

// Rehearsal carries its scheduling options inline. Setlist holds ad-hoc song
// ids and is only consulted when LinkedSetlistID is unset.
type Rehearsal struct {
	ID                uuid.UUID         `json:"id"`
	Title             string            `json:"title"`
	Status            string            `json:"status"`
	Options           []RehearsalOption `json:"options"`
	ConfirmedOptionID *uuid.UUID        `json:"confirmed_option_id,omitempty"`
	LinkedSetlistID   *uuid.UUID        `json:"linked_setlist_id,omitempty"`
	Setlist           []uuid.UUID       `json:"setlist"`
	CreatedBy         uuid.UUID         `json:"created_by"`
	WorkspaceID       *uuid.UUID        `json:"workspace_id,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (r *Rehearsal) Option(optionID uuid.UUID) *RehearsalOption {
	for i := range r.Options {
		if r.Options[i].ID == optionID {
			return &r.Options[i]
		}
	}
	return nil
}

package dto

import "github.com/google/uuid"

type RehearsalOptionRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

type CreateRehearsalRequest struct {
	ID     uuid.UUID              `json:"id,omitempty"`
	Title  string                 `json:"title"`
	Option RehearsalOptionRequest `json:"option"`
}

type SaveRehearsalRequest struct {
	Title           string      `json:"title"`
	LinkedSetlistID *uuid.UUID  `json:"linked_setlist_id,omitempty"`
	Setlist         []uuid.UUID `json:"setlist"`
}

type ConfirmRehearsalRequest struct {
	OptionID uuid.UUID `json:"option_id"`
}

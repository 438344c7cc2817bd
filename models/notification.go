package models

import "time"

// Notice is a user-facing notification attached to a wizard session.
// Transient notices are dismissed by the client on its own; sticky ones stay
// until the user closes them (payment confirmations and failures).
type Notice struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Sticky    bool      `json:"sticky"`
	CreatedAt time.Time `json:"createdAt"`
}

// DateOption is one selectable calendar day offered by the availability
// calculator.
type DateOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SlotOption is one of the fixed bookable time slots, with its past flag
// computed against the selected date.
type SlotOption struct {
	Label string `json:"label"`
	Past  bool   `json:"past"`
}

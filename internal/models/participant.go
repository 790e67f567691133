package models

import "time"

// UnknownParticipantName is shown for participant IDs that no longer resolve.
const UnknownParticipantName = "Unknown participant"

// Participant represents a counterparty of the owner's debts.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// Name is the display name (required).
	Name string

	// Email is an optional contact address.
	Email string

	// Phone is an optional contact number.
	Phone string

	// CreatedAt is when the participant was added to the directory.
	CreatedAt time.Time
}

// UnknownParticipant returns the placeholder used when id does not resolve.
func UnknownParticipant(id string) *Participant {
	return &Participant{ID: id, Name: UnknownParticipantName}
}

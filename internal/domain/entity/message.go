package entity

import "github.com/google/uuid"

// NotificationMessage is the outbound event published for every toast raised by a page session.
type NotificationMessage struct {
	EventID     uuid.UUID `json:"event_id"`
	SessionID   string    `json:"session_id"`
	Flow        string    `json:"flow"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	RaisedAt    string    `json:"raised_at"`
}

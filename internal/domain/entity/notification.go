package entity

import "time"

// Variant is the severity flag of a toast.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is the toast raised at the end of every user-facing operation.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	RaisedAt    time.Time `json:"raised_at"`
}

func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

func Destructive(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}

func (n Notification) IsDestructive() bool {
	return n.Variant == VariantDestructive
}

package models

import "time"

// Note is a free-form reminder. RemindAt is optional; the service stores it
// but does not schedule anything around it.
type Note struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	RemindAt  *time.Time `json:"remind_at,omitempty"`
	CreatedAt string     `json:"created_at,omitempty"`
	UpdatedAt string     `json:"updated_at,omitempty"`
}

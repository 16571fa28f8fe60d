package model

import "time"

// Notification is a message pushed to the user by the backend. Read state
// is a single-field mutation with no further lifecycle.
type Notification struct {
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
	ID        int64     `json:"id"`
	IsRead    bool      `json:"is_read"`
}

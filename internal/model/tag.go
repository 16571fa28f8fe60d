package model

import (
	"time"

	"github.com/sohakim/gagyebu/internal/common"
)

// Tag is a free-form label attachable to transactions. Color is a display
// hint only and is never validated beyond being a string.
type Tag struct {
	CreatedAt time.Time `json:"created_at,omitempty"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	ID        int64     `json:"id"`
}

// Validate checks the fields required to create a tag.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	return nil
}

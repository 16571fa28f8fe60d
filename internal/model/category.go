// Package model defines the domain types exchanged with the tracker backend.
package model

import (
	"time"

	"github.com/sohakim/gagyebu/internal/common"
)

// CategoryKind indicates whether a category classifies expenses or income.
type CategoryKind string

const (
	// CategoryKindExpense marks categories for expense transactions.
	CategoryKindExpense CategoryKind = "EXPENSE"
	// CategoryKindIncome marks categories for income transactions.
	CategoryKindIncome CategoryKind = "INCOME"
)

// Valid reports whether the kind is one of the known values.
func (k CategoryKind) Valid() bool {
	return k == CategoryKindExpense || k == CategoryKindIncome
}

// Category is a transaction category. Categories form a forest through the
// nullable Parent reference; the parent chain is always acyclic.
type Category struct {
	CreatedAt time.Time    `json:"created_at,omitempty"`
	Name      string       `json:"name"`
	Kind      CategoryKind `json:"kind"`
	Parent    *int64       `json:"parent,omitempty"`
	ID        int64        `json:"id"`
	SortOrder int          `json:"sort_order"`
}

// Validate checks the fields required to create a category.
func (c *Category) Validate() error {
	if c.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if !c.Kind.Valid() {
		return common.NewValidationError("kind", "must be EXPENSE or INCOME")
	}
	return nil
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.Parent == nil
}

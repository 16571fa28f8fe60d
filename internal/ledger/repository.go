// Package ledger implements the client-side repository for accounts,
// transactions, categories, and tags, including the soft-delete trash
// partitions for categories and tags.
package ledger

import (
	"github.com/sohakim/gagyebu/internal/api"
)

// Scope selects which partition of a soft-deleted collection to read.
type Scope string

const (
	// ScopeActive lists entities that have not been trashed.
	ScopeActive Scope = "active"
	// ScopeTrash lists entities currently in the trash.
	ScopeTrash Scope = "trash"
)

// Repository performs ledger operations against the backend. The backend
// is the sole authority on state; the repository reflects the last
// successfully observed response and never retries.
type Repository struct {
	api *api.Client
}

// NewRepository creates a repository over the given API client.
func NewRepository(c *api.Client) *Repository {
	return &Repository{api: c}
}

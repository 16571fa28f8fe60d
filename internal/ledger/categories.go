package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sohakim/gagyebu/internal/common"
	"github.com/sohakim/gagyebu/internal/model"
)

// CategoryPatch describes a partial category update. Nil fields are left
// unchanged. ClearParent moves the category to the root of the forest.
type CategoryPatch struct {
	Name        *string
	Kind        *model.CategoryKind
	SortOrder   *int
	Parent      *int64
	ClearParent bool
}

// ListCategories returns the categories in the requested partition. An
// entity is never in both partitions at once.
func (r *Repository) ListCategories(ctx context.Context, scope Scope) ([]model.Category, error) {
	path := "/categories/"
	if scope == ScopeTrash {
		path = "/categories/trash/"
	}

	var categories []model.Category
	if err := r.api.Get(ctx, path, nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts a new active category. A supplied parent must
// resolve to an existing category id, active or trashed.
func (r *Repository) CreateCategory(ctx context.Context, category model.Category) (*model.Category, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if category.Parent != nil {
		index, err := r.categoryIndex(ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := index[*category.Parent]; !ok {
			return nil, common.NewValidationError("parent", fmt.Sprintf("category %d does not exist", *category.Parent))
		}
	}

	payload := map[string]any{
		"name":       category.Name,
		"kind":       category.Kind,
		"sort_order": category.SortOrder,
	}
	if category.Parent != nil {
		payload["parent"] = *category.Parent
	}

	var created model.Category
	if err := r.api.Post(ctx, "/categories/", payload, &created); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Debug("created category", "id", created.ID, "name", created.Name)
	return &created, nil
}

// UpdateCategory applies a partial update. Assigning a parent whose
// ancestor chain includes the category itself fails with a CycleError
// before any request is sent; clearing the parent always succeeds.
func (r *Repository) UpdateCategory(ctx context.Context, id int64, patch CategoryPatch) (*model.Category, error) {
	payload := map[string]any{}
	if patch.Name != nil {
		payload["name"] = *patch.Name
	}
	if patch.Kind != nil {
		if !patch.Kind.Valid() {
			return nil, common.NewValidationError("kind", "must be EXPENSE or INCOME")
		}
		payload["kind"] = *patch.Kind
	}
	if patch.SortOrder != nil {
		payload["sort_order"] = *patch.SortOrder
	}

	switch {
	case patch.ClearParent:
		payload["parent"] = nil
	case patch.Parent != nil:
		index, err := r.categoryIndex(ctx)
		if err != nil {
			return nil, err
		}
		if err := checkParentCycle(index, id, *patch.Parent); err != nil {
			return nil, err
		}
		payload["parent"] = *patch.Parent
	}

	if len(payload) == 0 {
		return nil, common.NewValidationError("patch", "no fields to update")
	}

	var updated model.Category
	if err := r.api.Patch(ctx, fmt.Sprintf("/categories/%d/", id), payload, &updated); err != nil {
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteCategory moves an active category to the trash. Transactions
// whose method names the category keep their stored value untouched.
// Deleting an id that is unknown or already trashed fails with
// common.ErrNotFound.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/categories/%d/", id)); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	slog.Debug("trashed category", "id", id)
	return nil
}

// RestoreCategory moves a trashed category back to the active partition.
// Fails with common.ErrNotFound if the id is unknown or already active.
func (r *Repository) RestoreCategory(ctx context.Context, id int64) error {
	if err := r.api.Post(ctx, fmt.Sprintf("/categories/%d/restore/", id), nil, nil); err != nil {
		return fmt.Errorf("failed to restore category %d: %w", id, err)
	}
	slog.Debug("restored category", "id", id)
	return nil
}

// categoryIndex fetches both partitions and returns an id to node index.
// Parent resolution must see trashed categories too: a child may point at
// a parent sitting in the trash.
func (r *Repository) categoryIndex(ctx context.Context) (map[int64]model.Category, error) {
	active, err := r.ListCategories(ctx, ScopeActive)
	if err != nil {
		return nil, err
	}
	trashed, err := r.ListCategories(ctx, ScopeTrash)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]model.Category, len(active)+len(trashed))
	for _, c := range active {
		index[c.ID] = c
	}
	for _, c := range trashed {
		index[c.ID] = c
	}
	return index, nil
}

// checkParentCycle walks the ancestor chain of the proposed parent. The
// walk is bounded by the index size so it terminates even on malformed
// data. Returns a CycleError if id appears in the chain, a
// ValidationError if the parent does not resolve.
func checkParentCycle(index map[int64]model.Category, id, parentID int64) error {
	if parentID == id {
		return &common.CycleError{CategoryID: id, ParentID: parentID}
	}
	if _, ok := index[parentID]; !ok {
		return common.NewValidationError("parent", fmt.Sprintf("category %d does not exist", parentID))
	}

	current := parentID
	for range index {
		node, ok := index[current]
		if !ok || node.Parent == nil {
			return nil
		}
		if *node.Parent == id {
			return &common.CycleError{CategoryID: id, ParentID: parentID}
		}
		current = *node.Parent
	}
	return nil
}

package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sohakim/gagyebu/internal/common"
	"github.com/sohakim/gagyebu/internal/model"
)

// TagPatch describes a partial tag update. Nil fields are left unchanged.
type TagPatch struct {
	Name  *string
	Color *string
}

// ListTags returns the tags in the requested partition.
func (r *Repository) ListTags(ctx context.Context, scope Scope) ([]model.Tag, error) {
	path := "/tags/"
	if scope == ScopeTrash {
		path = "/tags/trash/"
	}

	var tags []model.Tag
	if err := r.api.Get(ctx, path, nil, &tags); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// CreateTag inserts a new active tag.
func (r *Repository) CreateTag(ctx context.Context, tag model.Tag) (*model.Tag, error) {
	if err := tag.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"name":  tag.Name,
		"color": tag.Color,
	}

	var created model.Tag
	if err := r.api.Post(ctx, "/tags/", payload, &created); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	slog.Debug("created tag", "id", created.ID, "name", created.Name)
	return &created, nil
}

// UpdateTag applies a partial update.
func (r *Repository) UpdateTag(ctx context.Context, id int64, patch TagPatch) (*model.Tag, error) {
	payload := map[string]any{}
	if patch.Name != nil {
		payload["name"] = *patch.Name
	}
	if patch.Color != nil {
		payload["color"] = *patch.Color
	}

	if len(payload) == 0 {
		return nil, common.NewValidationError("patch", "no fields to update")
	}

	var updated model.Tag
	if err := r.api.Patch(ctx, fmt.Sprintf("/tags/%d/", id), payload, &updated); err != nil {
		return nil, fmt.Errorf("failed to update tag %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteTag moves an active tag to the trash. Transactions carrying the
// tag are not modified. Deleting an unknown or already-trashed id fails
// with common.ErrNotFound.
func (r *Repository) DeleteTag(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/tags/%d/", id)); err != nil {
		return fmt.Errorf("failed to delete tag %d: %w", id, err)
	}
	slog.Debug("trashed tag", "id", id)
	return nil
}

// RestoreTag moves a trashed tag back to the active partition. Fails with
// common.ErrNotFound if the id is unknown or already active.
func (r *Repository) RestoreTag(ctx context.Context, id int64) error {
	if err := r.api.Post(ctx, fmt.Sprintf("/tags/%d/restore/", id), nil, nil); err != nil {
		return fmt.Errorf("failed to restore tag %d: %w", id, err)
	}
	slog.Debug("restored tag", "id", id)
	return nil
}

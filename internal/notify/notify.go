// Package notify reads and acknowledges backend notifications. Read
// state is a single-field mutation; there is no further lifecycle.
package notify

import (
	"context"
	"fmt"

	"github.com/sohakim/gagyebu/internal/api"
	"github.com/sohakim/gagyebu/internal/model"
)

// Client talks to the notification endpoints.
type Client struct {
	api *api.Client
}

// NewClient creates a notification client.
func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

// List returns all notifications, read and unread.
func (c *Client) List(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.api.Get(ctx, "/notifications/", nil, &notifications); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// ListUnread returns notifications not yet marked read.
func (c *Client) ListUnread(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.api.Get(ctx, "/notifications/unread/", nil, &notifications); err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips a notification's read flag.
func (c *Client) MarkRead(ctx context.Context, id int64) error {
	if err := c.api.Patch(ctx, fmt.Sprintf("/notifications/%d/read/", id), nil, nil); err != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, err)
	}
	return nil
}

// Package analysis manages asynchronous analysis jobs: submission,
// polling to a terminal status, cancellation, and the client-side list of
// completed analyses.
package analysis

import (
	"context"
	"fmt"

	"github.com/sohakim/gagyebu/internal/api"
	"github.com/sohakim/gagyebu/internal/model"
)

// Backend is the remote job runner the orchestrator drives.
type Backend interface {
	SubmitJob(ctx context.Context, req model.JobRequest) (string, error)
	PollStatus(ctx context.Context, taskID string) (model.JobStatus, error)
}

// Lister fetches completed analyses.
type Lister interface {
	ListAnalyses(ctx context.Context) ([]model.Analysis, error)
	ListAnalysesByPeriod(ctx context.Context, periodType model.AnalysisPeriodType) ([]model.Analysis, error)
}

// Client implements Backend and Lister over the HTTP API.
type Client struct {
	api *api.Client
}

// NewClient creates an analysis API client.
func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

// SubmitJob starts an analysis job and returns the runner-assigned task id.
func (c *Client) SubmitJob(ctx context.Context, req model.JobRequest) (string, error) {
	var out struct {
		TaskID string `json:"task_id"`
	}
	if err := c.api.Post(ctx, "/analyses/run/", req, &out); err != nil {
		return "", fmt.Errorf("failed to submit analysis job: %w", err)
	}
	if out.TaskID == "" {
		return "", fmt.Errorf("backend returned no task id")
	}
	return out.TaskID, nil
}

// PollStatus fetches the current status of a submitted job.
func (c *Client) PollStatus(ctx context.Context, taskID string) (model.JobStatus, error) {
	var out struct {
		Status model.JobStatus `json:"status"`
	}
	if err := c.api.Get(ctx, "/analyses/tasks/"+taskID+"/", nil, &out); err != nil {
		return "", fmt.Errorf("failed to poll job %s: %w", taskID, err)
	}
	return out.Status, nil
}

// ListAnalyses fetches all completed analyses.
func (c *Client) ListAnalyses(ctx context.Context) ([]model.Analysis, error) {
	var analyses []model.Analysis
	if err := c.api.Get(ctx, "/analyses/", nil, &analyses); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

// ListAnalysesByPeriod fetches completed analyses of one cadence.
func (c *Client) ListAnalysesByPeriod(ctx context.Context, periodType model.AnalysisPeriodType) ([]model.Analysis, error) {
	q := api.Query{"type": string(periodType)}
	var analyses []model.Analysis
	if err := c.api.Get(ctx, "/analyses/period/", q, &analyses); err != nil {
		return nil, fmt.Errorf("failed to list %s analyses: %w", periodType, err)
	}
	return analyses, nil
}

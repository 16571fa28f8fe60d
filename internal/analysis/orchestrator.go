package analysis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sohakim/gagyebu/internal/model"
)

// DefaultPollInterval is the delay between status polls. The first poll
// fires immediately after submission.
const DefaultPollInterval = 3 * time.Second

// Refresher is notified exactly once when a job succeeds.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// JobHandle tracks a submitted job's identifier and last observed status.
type JobHandle struct {
	TaskID  string
	Request model.JobRequest

	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.Mutex
	status     model.JobStatus
	terminated bool
}

// Status returns the last observed status.
func (h *JobHandle) Status() model.JobStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Done is closed when the job reaches a terminal status or is cancelled.
func (h *JobHandle) Done() <-chan struct{} {
	return h.done
}

func (h *JobHandle) setStatus(s model.JobStatus) {
	h.mu.Lock()
	h.status = s
	h.mu.Unlock()
}

// claimTerminal attempts to move the handle into its final state. Only
// one caller wins: either the polling loop observing a terminal status or
// a cancellation. The loser must not trigger any side effects.
func (h *JobHandle) claimTerminal(s model.JobStatus) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.terminated {
		return false
	}
	h.terminated = true
	if s != "" {
		h.status = s
	}
	close(h.done)
	return true
}

// Orchestrator owns one polling loop per submitted job. Loops stop on the
// first terminal observation, on cancellation, or on a transport failure
// (treated as terminal, no retry). A successful job triggers exactly one
// refresh of the result store.
type Orchestrator struct {
	backend  Backend
	store    Refresher
	jobs     map[string]*JobHandle
	interval time.Duration
	mu       sync.Mutex
	wg       sync.WaitGroup
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithPollInterval overrides the delay between polls.
func WithPollInterval(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.interval = d
	}
}

// NewOrchestrator creates an orchestrator. The store may be nil when no
// success reaction is wanted.
func NewOrchestrator(backend Backend, store Refresher, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		backend:  backend,
		store:    store,
		interval: DefaultPollInterval,
		jobs:     make(map[string]*JobHandle),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit validates and submits a job, then starts its polling loop. Each
// successful submission owns an independent loop; earlier jobs keep
// polling. If the runner hands back a task id that is already being
// polled, the existing handle is returned instead of starting a twin.
func (o *Orchestrator) Submit(ctx context.Context, req model.JobRequest) (*JobHandle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	taskID, err := o.backend.SubmitJob(ctx, req)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	if existing, ok := o.jobs[taskID]; ok {
		o.mu.Unlock()
		return existing, nil
	}

	// Polling outlives the submission context: the loop ends only on a
	// terminal status or an explicit cancel.
	pollCtx, cancel := context.WithCancel(context.Background())
	handle := &JobHandle{
		TaskID:  taskID,
		Request: req,
		status:  model.JobStatusPending,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	o.jobs[taskID] = handle
	o.wg.Add(1)
	o.mu.Unlock()

	slog.Info("submitted analysis job", "task_id", taskID, "about", req.About, "type", req.Type)
	go o.poll(pollCtx, handle)

	return handle, nil
}

// Cancel stops the polling loop for taskID regardless of its current
// status. Idempotent; unknown ids are a no-op. A poll response already in
// flight is discarded, so no refresh can fire after Cancel returns.
func (o *Orchestrator) Cancel(taskID string) {
	o.mu.Lock()
	handle, ok := o.jobs[taskID]
	delete(o.jobs, taskID)
	o.mu.Unlock()
	if !ok {
		return
	}

	handle.cancel()
	if handle.claimTerminal("") {
		slog.Debug("cancelled analysis job", "task_id", taskID)
	}
}

// Close cancels every active polling loop and waits for them to exit.
// Must be called when the owning context is torn down so no timer and no
// stale success-refresh outlives it.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	handles := make([]*JobHandle, 0, len(o.jobs))
	for id, h := range o.jobs {
		handles = append(handles, h)
		delete(o.jobs, id)
	}
	o.mu.Unlock()

	for _, h := range handles {
		h.cancel()
		h.claimTerminal("")
	}
	o.wg.Wait()
}

// Active returns the number of jobs still being polled.
func (o *Orchestrator) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.jobs)
}

func (o *Orchestrator) poll(ctx context.Context, h *JobHandle) {
	defer o.wg.Done()
	defer h.cancel()

	// First poll fires without delay.
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		status, err := o.backend.PollStatus(ctx, h.TaskID)

		// A response that lands after cancellation is discarded, not
		// acted upon.
		if ctx.Err() != nil {
			return
		}

		switch {
		case err != nil:
			// Transport failure is terminal for this job.
			if h.claimTerminal(model.JobStatusError) {
				slog.Warn("analysis poll failed", "task_id", h.TaskID, "error", err)
				o.forget(h.TaskID)
			}
			return
		case status.Terminal():
			if h.claimTerminal(status) {
				slog.Info("analysis job finished", "task_id", h.TaskID, "status", status)
				if status == model.JobStatusSuccess {
					o.refreshStore(ctx)
				}
				o.forget(h.TaskID)
			}
			return
		default:
			h.setStatus(status)
			timer.Reset(o.interval)
		}
	}
}

func (o *Orchestrator) refreshStore(ctx context.Context) {
	if o.store == nil {
		return
	}
	if err := o.store.Refresh(ctx); err != nil {
		slog.Warn("result refresh after job success failed", "error", err)
	}
}

func (o *Orchestrator) forget(taskID string) {
	o.mu.Lock()
	delete(o.jobs, taskID)
	o.mu.Unlock()
}

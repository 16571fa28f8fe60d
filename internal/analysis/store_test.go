package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohakim/gagyebu/internal/model"
)

type stubLister struct {
	err      error
	all      []model.Analysis
	byPeriod map[model.AnalysisPeriodType][]model.Analysis
	mu       sync.Mutex
}

func (l *stubLister) ListAnalyses(_ context.Context) ([]model.Analysis, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	return l.all, nil
}

func (l *stubLister) ListAnalysesByPeriod(_ context.Context, p model.AnalysisPeriodType) ([]model.Analysis, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	return l.byPeriod[p], nil
}

func (l *stubLister) set(all []model.Analysis, err error) {
	l.mu.Lock()
	l.all = all
	l.err = err
	l.mu.Unlock()
}

func TestResultStore_Refresh(t *testing.T) {
	lister := &stubLister{all: []model.Analysis{{ID: 1, About: model.AboutTotalExpense}}}
	store := NewResultStore(lister)

	require.NoError(t, store.Refresh(context.Background()))
	require.Len(t, store.Analyses(), 1)
	assert.Equal(t, model.AboutTotalExpense, store.Analyses()[0].About)

	// A failed refresh leaves the prior snapshot intact.
	lister.set(nil, errors.New("backend down"))
	require.Error(t, store.Refresh(context.Background()))
	assert.Len(t, store.Analyses(), 1)

	// The next successful refresh wins.
	lister.set([]model.Analysis{{ID: 1}, {ID: 2}}, nil)
	require.NoError(t, store.Refresh(context.Background()))
	assert.Len(t, store.Analyses(), 2)
}

func TestResultStore_RefreshPeriod(t *testing.T) {
	lister := &stubLister{
		all: []model.Analysis{{ID: 1}, {ID: 2}},
		byPeriod: map[model.AnalysisPeriodType][]model.Analysis{
			model.PeriodWeekly: {{ID: 1, Type: model.PeriodWeekly}},
		},
	}
	store := NewResultStore(lister)

	require.NoError(t, store.RefreshPeriod(context.Background(), model.PeriodWeekly))
	require.Len(t, store.Analyses(), 1)
	assert.Equal(t, model.PeriodWeekly, store.Analyses()[0].Type)

	// Empty period type behaves like a full refresh.
	require.NoError(t, store.RefreshPeriod(context.Background(), ""))
	assert.Len(t, store.Analyses(), 2)
}

func TestResultStore_SnapshotIsACopy(t *testing.T) {
	lister := &stubLister{all: []model.Analysis{{ID: 1, Description: "original"}}}
	store := NewResultStore(lister)
	require.NoError(t, store.Refresh(context.Background()))

	snapshot := store.Analyses()
	snapshot[0].Description = "mutated"
	assert.Equal(t, "original", store.Analyses()[0].Description)
}

// The full journey: submit a weekly total_expense job, watch it reach
// SUCCESS, and find the matching analysis in the refreshed store.
func TestWeeklyExpenseScenario(t *testing.T) {
	result := model.Analysis{
		ID:          7,
		About:       model.AboutTotalExpense,
		Type:        model.PeriodWeekly,
		PeriodStart: model.NewDate(2024, time.January, 1),
		PeriodEnd:   model.NewDate(2024, time.January, 7),
	}
	lister := &stubLister{}
	backend := &stubBackend{
		taskID:   "task-weekly",
		statuses: []model.JobStatus{model.JobStatusPending, model.JobStatusSuccess},
	}
	store := NewResultStore(lister)
	orch := NewOrchestrator(backend, store, WithPollInterval(time.Millisecond))
	defer orch.Close()

	// The backend appends the analysis when the job completes; listing
	// before that returns nothing.
	lister.set([]model.Analysis{result}, nil)

	handle, err := orch.Submit(context.Background(), model.JobRequest{
		About:       model.AboutTotalExpense,
		Type:        model.PeriodWeekly,
		PeriodStart: model.NewDate(2024, time.January, 1),
		PeriodEnd:   model.NewDate(2024, time.January, 7),
	})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPending, handle.Status())

	waitDone(t, handle)
	require.Equal(t, model.JobStatusSuccess, handle.Status())

	analyses := store.Analyses()
	require.Len(t, analyses, 1)
	assert.Equal(t, model.AboutTotalExpense, analyses[0].About)
	assert.Equal(t, model.PeriodWeekly, analyses[0].Type)
	assert.Equal(t, "2024-01-01", analyses[0].PeriodStart.String())
	assert.Equal(t, "2024-01-07", analyses[0].PeriodEnd.String())
}

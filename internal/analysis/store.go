package analysis

import (
	"context"
	"sync"

	"github.com/sohakim/gagyebu/internal/model"
)

// ResultStore holds the completed analyses last fetched from the backend.
// It is refreshed exactly once per job success by the orchestrator and
// independently by user-triggered refreshes. The last successful response
// wins; a failed refresh leaves the prior snapshot intact.
type ResultStore struct {
	lister   Lister
	analyses []model.Analysis
	mu       sync.RWMutex
}

// NewResultStore creates an empty store backed by the given lister.
func NewResultStore(lister Lister) *ResultStore {
	return &ResultStore{lister: lister}
}

// Refresh replaces the snapshot with the full analysis list.
func (s *ResultStore) Refresh(ctx context.Context) error {
	analyses, err := s.lister.ListAnalyses(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.analyses = analyses
	s.mu.Unlock()
	return nil
}

// RefreshPeriod replaces the snapshot with analyses of one cadence. An
// empty period type behaves like Refresh.
func (s *ResultStore) RefreshPeriod(ctx context.Context, periodType model.AnalysisPeriodType) error {
	if periodType == "" {
		return s.Refresh(ctx)
	}

	analyses, err := s.lister.ListAnalysesByPeriod(ctx, periodType)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.analyses = analyses
	s.mu.Unlock()
	return nil
}

// Analyses returns a copy of the current snapshot.
func (s *ResultStore) Analyses() []model.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Analysis, len(s.analyses))
	copy(out, s.analyses)
	return out
}

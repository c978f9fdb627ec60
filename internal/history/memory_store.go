package history

import (
	"sync"

	"github.com/petrijr/stepline/pkg/api"
)

// MemoryStore is a simple, goroutine-safe RunStore backed by maps.
type MemoryStore struct {
	mu    sync.RWMutex
	runs  map[string]*api.RunRecord
	order []string // run IDs in insertion order, for stable listings
	steps map[string][]*api.StepRecord
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:  make(map[string]*api.RunRecord),
		steps: make(map[string][]*api.StepRecord),
	}
}

// Ensure MemoryStore implements the interface.
var _ RunStore = (*MemoryStore)(nil)

func (s *MemoryStore) SaveRun(rec *api.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[rec.ID]; !ok {
		s.order = append(s.order, rec.ID)
	}
	c := *rec
	s.runs[rec.ID] = &c
	return nil
}

func (s *MemoryStore) UpdateRun(rec *api.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[rec.ID]; !ok {
		return ErrRunNotFound
	}
	c := *rec
	s.runs[rec.ID] = &c
	return nil
}

func (s *MemoryStore) SaveStep(rec *api.StepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *rec
	s.steps[rec.RunID] = append(s.steps[rec.RunID], &c)
	return nil
}

func (s *MemoryStore) GetRun(id string) (*api.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}

	c := *rec
	return &c, nil
}

func (s *MemoryStore) ListRuns(filter RunFilter) ([]*api.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*api.RunRecord

	for _, id := range s.order {
		rec := s.runs[id]
		if filter.Pipeline != "" && rec.Pipeline != filter.Pipeline {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		c := *rec
		result = append(result, &c)
	}

	return result, nil
}

func (s *MemoryStore) ListSteps(runID string) ([]*api.StepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.steps[runID]
	result := make([]*api.StepRecord, 0, len(recs))
	for _, rec := range recs {
		c := *rec
		result = append(result, &c)
	}

	return result, nil
}

package recency

import (
	"context"
	"sync"
)

// MemoryStore keeps MRU lists in process memory. Good enough for a single
// portal instance; the Postgres store covers multi-instance deployments.
type MemoryStore struct {
	mu    sync.Mutex
	limit int
	lists map[string][]Entry
}

func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{limit: limit, lists: make(map[string][]Entry)}
}

func (s *MemoryStore) Touch(_ context.Context, viewerID string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[viewerID]
	filtered := make([]Entry, 0, len(list)+1)
	filtered = append(filtered, e)
	for _, existing := range list {
		if existing.PatientID != e.PatientID {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) > s.limit {
		filtered = filtered[:s.limit]
	}
	s.lists[viewerID] = filtered
	return nil
}

func (s *MemoryStore) List(_ context.Context, viewerID string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.lists[viewerID]...), nil
}

func (s *MemoryStore) Clear(_ context.Context, viewerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, viewerID)
	return nil
}

package trip

import (
	"context"
	"sort"
	"sync"

	"wanderplan/internal/types"
)

// Store persists trips. Implementations return ErrNotFound for unknown ids
// and do not check ownership.
type Store interface {
	Create(ctx context.Context, t *Trip) error
	Get(ctx context.Context, id types.ID) (*Trip, error)
	ListByUser(ctx context.Context, userID string) ([]*Trip, error)
	Update(ctx context.Context, t *Trip) error
	Delete(ctx context.Context, id types.ID) error
}

// MemoryStore keeps trips in process memory. Used for local runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	trips map[types.ID]*Trip
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trips: make(map[types.ID]*Trip)}
}

func (s *MemoryStore) Create(_ context.Context, t *Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips[t.ID] = cloneTrip(t)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTrip(t), nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]*Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Trip
	for _, t := range s.trips {
		if t.UserID == userID {
			out = append(out, cloneTrip(t))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, t *Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[t.ID]; !ok {
		return ErrNotFound
	}
	s.trips[t.ID] = cloneTrip(t)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[id]; !ok {
		return ErrNotFound
	}
	delete(s.trips, id)
	return nil
}

func sortNewestFirst(trips []*Trip) {
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
}

func cloneTrip(t *Trip) *Trip {
	cp := *t
	cp.Plan = t.Plan.Clone()
	cp.Preferences.Interests = append([]string(nil), t.Preferences.Interests...)
	return &cp
}

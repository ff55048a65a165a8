package profile

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryStore is the default backend and the one tests run against.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]Profile)}
}

func (s *InMemoryStore) Save(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing, ok := s.profiles[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
		// The engine owns the derived suspicion fields; a CRUD update
		// keeps them until the next scan recomputes them.
		p.SuspicionScore = existing.SuspicionScore
		p.LinkageCount = existing.LinkageCount
		p.SuspicionReasons = existing.SuspicionReasons
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.profiles[p.ID] = p
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	// Deterministic order keeps scans reproducible run to run.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

// ReplaceSummaries overwrites the derived suspicion fields for every profile.
// Profiles absent from the map are reset to zero so evidence from deleted
// records cannot linger. The linkage store calls this during a scan commit.
func (s *InMemoryStore) ReplaceSummaries(_ context.Context, summaries map[string]Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.profiles {
		if sum, ok := summaries[id]; ok {
			p.SuspicionScore = sum.SuspicionScore
			p.LinkageCount = sum.LinkageCount
			p.SuspicionReasons = sum.SuspicionReasons
		} else {
			p.SuspicionScore = 0
			p.LinkageCount = 0
			p.SuspicionReasons = nil
		}
		s.profiles[id] = p
	}
	return nil
}

package store

import (
	"context"
	"sync"

	"checkpoint/internal/checklist/models"
)

// InMemoryStore keeps the checklist in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	pillars []models.Pillar
}

// NewInMemory creates a store holding pillars.
func NewInMemory(pillars []models.Pillar) *InMemoryStore {
	return &InMemoryStore{pillars: clonePillars(pillars)}
}

func (s *InMemoryStore) LoadTree(_ context.Context) (*models.Tree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.NewTree(s.pillars), nil
}

func (s *InMemoryStore) ReplaceTree(_ context.Context, pillars []models.Pillar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pillars = clonePillars(pillars)
	return nil
}

func (s *InMemoryStore) CountRequirements(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.pillars {
		for _, st := range p.Standards {
			n += len(st.Requirements)
		}
	}
	return n, nil
}

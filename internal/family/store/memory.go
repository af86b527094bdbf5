package store

import (
	"context"
	"fmt"
	"sync"

	"wikisite/internal/family/models"
	"wikisite/pkg/platform/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound (wrapped) when the requested family does not exist
// - Return ErrConflict (wrapped) when creating a family that already exists
// - Return nil for successful operations

// Memory keeps family configuration in memory. This is the directory used
// by tests and single-process bots whose family files are compiled in.
type Memory struct {
	mu       sync.RWMutex
	families map[string]*models.Family
}

// NewMemory constructs an empty in-memory family directory.
func NewMemory() *Memory {
	return &Memory{families: make(map[string]*models.Family)}
}

// Find implements family.Directory.
func (s *Memory) Find(_ context.Context, name string) (*models.Family, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if fam, ok := s.families[name]; ok {
		return fam, nil
	}
	return nil, fmt.Errorf("family %q: %w", name, sentinel.ErrNotFound)
}

// Create registers a new family. Registering a name twice is a conflict;
// family metadata is immutable per process once loaded.
func (s *Memory) Create(_ context.Context, fam *models.Family) error {
	if err := fam.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.families[fam.Name]; exists {
		return fmt.Errorf("family %q: %w", fam.Name, sentinel.ErrConflict)
	}
	s.families[fam.Name] = fam
	return nil
}

// List returns the registered family names.
func (s *Memory) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.families))
	for name := range s.families {
		names = append(names, name)
	}
	return names, nil
}

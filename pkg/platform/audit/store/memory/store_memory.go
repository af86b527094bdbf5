package memory

import (
	"context"
	"sync"

	audit "wikisite/pkg/platform/audit"
)

// InMemoryStore collects audit events in memory, keyed by family name.
// Suitable for tests and single-process bots; fan out to a durable sink when
// events must survive the process.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]audit.Event)}
}

// Emit implements audit.Publisher.
func (s *InMemoryStore) Emit(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Family] = append(s.events[event.Family], event)
	return nil
}

// ListByFamily returns a copy of the events recorded for one family.
func (s *InMemoryStore) ListByFamily(_ context.Context, family string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[family]...), nil
}

// ListAll returns all recorded events across families.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []audit.Event
	for _, evs := range s.events {
		all = append(all, evs...)
	}
	return all, nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]audit.Event)
}

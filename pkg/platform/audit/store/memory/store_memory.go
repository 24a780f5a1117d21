package memory

import (
	"context"
	"sync"

	id "travelgate/pkg/domain"
	audit "travelgate/pkg/platform/audit"
)

const defaultCapacity = 10_000

// InMemoryStore keeps the most recent events. Once capacity is reached the
// oldest event is evicted on every append.
type InMemoryStore struct {
	mu       sync.RWMutex
	events   map[id.SessionID][]audit.Event
	order    []audit.Event
	capacity int
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.SessionID][]audit.Event)
	s.order = nil
}

func NewInMemoryStore() *InMemoryStore {
	return NewInMemoryStoreWithCapacity(defaultCapacity)
}

func NewInMemoryStoreWithCapacity(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &InMemoryStore{
		events:   make(map[id.SessionID][]audit.Event),
		capacity: capacity,
	}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.SessionID] = append(s.events[event.SessionID], event)
	s.order = append(s.order, event)
	if len(s.order) > s.capacity {
		s.evictOldest()
	}
	return nil
}

func (s *InMemoryStore) evictOldest() {
	oldest := s.order[0]
	s.order = s.order[1:]
	trail := s.events[oldest.SessionID]
	if len(trail) <= 1 {
		delete(s.events, oldest.SessionID)
		return
	}
	s.events[oldest.SessionID] = trail[1:]
}

func (s *InMemoryStore) ListBySession(_ context.Context, sessionID id.SessionID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[sessionID]...), nil
}

// ListRecent returns up to limit events in append order, newest last.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := max(len(s.order)-limit, 0)
	return append([]audit.Event{}, s.order[start:]...), nil
}

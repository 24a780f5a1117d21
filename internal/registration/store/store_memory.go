// Package store keeps registration sessions for their TTL.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"travelgate/internal/registration/models"
	id "travelgate/pkg/domain"
	"travelgate/pkg/platform/sentinel"
)

type busyFlag struct {
	token     string
	expiresAt time.Time
}

// InMemoryStore holds registrations in process memory.
type InMemoryStore struct {
	mu            sync.Mutex
	registrations map[id.SessionID]models.Registration
	busy          map[id.SessionID]busyFlag
	now           func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		registrations: make(map[id.SessionID]models.Registration),
		busy:          make(map[id.SessionID]busyFlag),
		now:           time.Now,
	}
}

func (s *InMemoryStore) Get(_ context.Context, sessionID id.SessionID) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.registrations[sessionID]
	if !ok || r.IsExpired(s.now()) {
		delete(s.registrations, sessionID)
		return nil, fmt.Errorf("registration %s: %w", sessionID, sentinel.ErrNotFound)
	}
	return &r, nil
}

func (s *InMemoryStore) Save(_ context.Context, r *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrations[r.SessionID] = *r
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registrations, sessionID)
	delete(s.busy, sessionID)
	return nil
}

func (s *InMemoryStore) AcquireBusy(_ context.Context, sessionID id.SessionID, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if flag, ok := s.busy[sessionID]; ok && now.Before(flag.expiresAt) {
		return "", sentinel.ErrBusy
	}
	token := uuid.NewString()
	s.busy[sessionID] = busyFlag{token: token, expiresAt: now.Add(ttl)}
	return token, nil
}

func (s *InMemoryStore) ReleaseBusy(_ context.Context, sessionID id.SessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flag, ok := s.busy[sessionID]; ok && flag.token == token {
		delete(s.busy, sessionID)
	}
	return nil
}

// Package store keeps wizard sessions for their TTL. Nothing here is durable:
// a declaration lives only as long as its session.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"travelgate/internal/declaration/models"
	id "travelgate/pkg/domain"
	"travelgate/pkg/platform/sentinel"
)

type busyFlag struct {
	token     string
	expiresAt time.Time
}

// InMemoryStore holds declarations in process memory. Values are copied on
// the way in and out so callers never share a form across requests.
type InMemoryStore struct {
	mu           sync.Mutex
	declarations map[id.SessionID][]byte
	expiries     map[id.SessionID]time.Time
	busy         map[id.SessionID]busyFlag
	now          func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		declarations: make(map[id.SessionID][]byte),
		expiries:     make(map[id.SessionID]time.Time),
		busy:         make(map[id.SessionID]busyFlag),
		now:          time.Now,
	}
}

func (s *InMemoryStore) Get(_ context.Context, sessionID id.SessionID) (*models.Declaration, error) {
	s.mu.Lock()
	raw, ok := s.declarations[sessionID]
	expired := ok && !s.now().Before(s.expiries[sessionID])
	if expired {
		delete(s.declarations, sessionID)
		delete(s.expiries, sessionID)
	}
	s.mu.Unlock()

	if !ok || expired {
		return nil, fmt.Errorf("declaration %s: %w", sessionID, sentinel.ErrNotFound)
	}
	var d models.Declaration
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode declaration: %w", err)
	}
	return &d, nil
}

func (s *InMemoryStore) Save(_ context.Context, d *models.Declaration) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode declaration: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.declarations[d.SessionID] = raw
	s.expiries[d.SessionID] = d.ExpiresAt
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.declarations, sessionID)
	delete(s.expiries, sessionID)
	delete(s.busy, sessionID)
	return nil
}

// AcquireBusy sets the session's busy flag. It returns sentinel.ErrBusy while
// another holder's flag has not expired.
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

// ReleaseBusy clears the flag if token still owns it.
func (s *InMemoryStore) ReleaseBusy(_ context.Context, sessionID id.SessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flag, ok := s.busy[sessionID]; ok && flag.token == token {
		delete(s.busy, sessionID)
	}
	return nil
}

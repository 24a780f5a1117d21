package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"travelgate/internal/registration/models"
	id "travelgate/pkg/domain"
	"travelgate/pkg/platform/sentinel"
)

const (
	registrationKeyPrefix = "tg:reg:"
	busyKeyPrefix         = "tg:reg:busy:"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps registrations as JSON, expiring with the session.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func registrationKey(sessionID id.SessionID) string {
	return registrationKeyPrefix + sessionID.String()
}

func busyKey(sessionID id.SessionID) string {
	return busyKeyPrefix + sessionID.String()
}

func (s *RedisStore) Get(ctx context.Context, sessionID id.SessionID) (*models.Registration, error) {
	raw, err := s.client.Get(ctx, registrationKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("registration %s: %w", sessionID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	var r models.Registration
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode registration: %w", err)
	}
	return &r, nil
}

func (s *RedisStore) Save(ctx context.Context, r *models.Registration) error {
	ttl := r.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, r.SessionID)
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}
	if err := s.client.Set(ctx, registrationKey(r.SessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save registration: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	return s.client.Del(ctx, registrationKey(sessionID), busyKey(sessionID)).Err()
}

func (s *RedisStore) AcquireBusy(ctx context.Context, sessionID id.SessionID, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, busyKey(sessionID), token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire busy flag: %w", err)
	}
	if !ok {
		return "", sentinel.ErrBusy
	}
	return token, nil
}

func (s *RedisStore) ReleaseBusy(ctx context.Context, sessionID id.SessionID, token string) error {
	if err := releaseScript.Run(ctx, s.client, []string{busyKey(sessionID)}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release busy flag: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"travelgate/internal/declaration/models"
	id "travelgate/pkg/domain"
	"travelgate/pkg/platform/sentinel"
)

const (
	declarationKeyPrefix = "tg:decl:"
	busyKeyPrefix        = "tg:decl:busy:"
)

// releaseScript deletes the busy key only if it still holds the caller's
// token, so a slow request cannot clear a newer holder's flag.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps declarations as JSON with the session TTL as key expiry.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func declarationKey(sessionID id.SessionID) string {
	return declarationKeyPrefix + sessionID.String()
}

func busyKey(sessionID id.SessionID) string {
	return busyKeyPrefix + sessionID.String()
}

func (s *RedisStore) Get(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error) {
	raw, err := s.client.Get(ctx, declarationKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("declaration %s: %w", sessionID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get declaration: %w", err)
	}
	var d models.Declaration
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode declaration: %w", err)
	}
	return &d, nil
}

func (s *RedisStore) Save(ctx context.Context, d *models.Declaration) error {
	ttl := d.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, d.SessionID)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode declaration: %w", err)
	}
	if err := s.client.Set(ctx, declarationKey(d.SessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save declaration: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	return s.client.Del(ctx, declarationKey(sessionID), busyKey(sessionID)).Err()
}

// AcquireBusy uses SET NX so only one request per session mutates at a time.
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

package bucket

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"travelgate/internal/ratelimit/models"
)

// sweepEvery bounds how often idle keys are dropped.
const sweepEvery = 1024

// InMemoryBucketStore keeps one sliding window of request times per key in
// process memory. Replicas that must share limits use RedisBucketStore.
type InMemoryBucketStore struct {
	mu      sync.Mutex
	windows map[string]entry
	calls   int
	now     func() time.Time
}

type entry struct {
	times  []time.Time
	length time.Duration
}

type Option func(*InMemoryBucketStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *InMemoryBucketStore) {
		s.now = now
	}
}

func NewInMemoryBucketStore(opts ...Option) *InMemoryBucketStore {
	s := &InMemoryBucketStore{
		windows: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow counts one request for key.
func (s *InMemoryBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN records cost requests at once, or none if they do not all fit.
func (s *InMemoryBucketStore) AllowN(_ context.Context, key string, cost int, limit int, window time.Duration) (*models.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	times := live(s.windows[key].times, now, window)

	res := &models.RateLimitResult{Limit: limit, ResetAt: now.Add(window)}
	if len(times)+cost <= limit {
		for range cost {
			times = append(times, now)
		}
		res.Allowed = true
		res.Remaining = limit - len(times)
	}
	if len(times) > 0 {
		res.ResetAt = times[0].Add(window)
	}
	if !res.Allowed {
		res.RetryAfter = retryAfter(now, res.ResetAt)
	}
	s.windows[key] = entry{times: times, length: window}
	return res, nil
}

func (s *InMemoryBucketStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

// GetCurrentCount reports how many requests the key's window holds now.
func (s *InMemoryBucketStore) GetCurrentCount(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[key]
	return len(live(w.times, s.now(), w.length)), nil
}

// live drops the times that have left the window. times is ascending.
func live(times []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	i := slices.IndexFunc(times, func(t time.Time) bool { return t.After(cutoff) })
	if i < 0 {
		return times[:0]
	}
	return times[i:]
}

// sweep drops keys whose windows have emptied. Caller holds s.mu.
func (s *InMemoryBucketStore) sweep(now time.Time) {
	s.calls++
	if s.calls%sweepEvery != 0 {
		return
	}
	for key, w := range s.windows {
		if len(live(w.times, now, w.length)) == 0 {
			delete(s.windows, key)
		}
	}
}

func retryAfter(now, resetAt time.Time) int {
	return max(int(math.Ceil(resetAt.Sub(now).Seconds())), 1)
}

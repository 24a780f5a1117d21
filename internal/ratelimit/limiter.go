// Package ratelimit throttles callers with sliding windows. A Limiter binds
// one policy to a bucket store; the same limiter type backs the per-session
// HS-code lookup throttle and the per-IP session creation throttle.
package ratelimit

import (
	"context"
	"strings"
	"time"

	"travelgate/internal/ratelimit/metrics"
	"travelgate/internal/ratelimit/models"
)

// BucketStore is a sliding-window counter keyed by string.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

type Limiter struct {
	store   BucketStore
	policy  models.Policy
	scope   string
	metrics *metrics.Metrics
}

// NewLimiter applies policy to every key under scope. scope also labels
// denials in metrics.
func NewLimiter(store BucketStore, scope string, policy models.Policy, m *metrics.Metrics) *Limiter {
	return &Limiter{
		store:   store,
		policy:  policy,
		scope:   scope,
		metrics: m,
	}
}

// Check counts one request for key.
func (l *Limiter) Check(ctx context.Context, key string) (*models.RateLimitResult, error) {
	res, err := l.store.Allow(ctx, l.bucketKey(key), l.policy.Limit, l.policy.Window)
	if err != nil {
		l.metrics.IncrementErrors(l.scope)
		return nil, err
	}
	if !res.Allowed {
		l.metrics.IncrementDenied(l.scope)
	}
	return res, nil
}

// bucketKey namespaces key under the scope. Colons in caller-supplied keys
// (IPv6 addresses) are replaced so they cannot address another scope.
func (l *Limiter) bucketKey(key string) string {
	return l.scope + ":" + strings.ReplaceAll(key, ":", "_")
}

// Allow is Check reduced to its verdict.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := l.Check(ctx, key)
	if err != nil {
		return false, err
	}
	return res.Allowed, nil
}

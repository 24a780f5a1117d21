// Package middleware puts a ratelimit.Limiter in front of HTTP routes.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"travelgate/internal/ratelimit/models"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/platform/httputil"
	"travelgate/pkg/requestcontext"
)

type RateLimiter interface {
	Check(ctx context.Context, key string) (*models.RateLimitResult, error)
}

type Middleware struct {
	limiter  RateLimiter
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns every check into a pass-through (RATE_LIMIT_DISABLED).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{limiter: limiter, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Warn("session creation throttle disabled")
	}
	return m
}

// RateLimitIP throttles by client address. Limiter failures let the request
// through.
func (m *Middleware) RateLimitIP(next http.Handler) http.Handler {
	return m.limit(requestcontext.ClientIP, next)
}

func (m *Middleware) limit(keyOf func(context.Context) string, next http.Handler) http.Handler {
	if m.disabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		res, err := m.limiter.Check(ctx, keyOf(ctx))
		if err != nil {
			m.logger.ErrorContext(ctx, "rate limit check failed, allowing request",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if !res.Allowed {
			h.Set("Retry-After", strconv.Itoa(res.RetryAfter))
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many new sessions from this address, try again shortly"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

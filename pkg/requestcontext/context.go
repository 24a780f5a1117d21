// Package requestcontext carries request-scoped values (session, request id,
// client metadata, request time) from middleware into services without
// pulling net/http into the service layer.
//
// Tests set the values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithSessionID(ctx, sessionID)
package requestcontext

import (
	"context"
	"time"

	id "travelgate/pkg/domain"
)

type key int

const (
	keySessionID key = iota
	keyRequestID
	keyClientIP
	keyUserAgent
	keyRequestTime
)

func value[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

// SessionID is the wizard session bound to the request, or the nil id.
func SessionID(ctx context.Context) id.SessionID {
	v, _ := value[id.SessionID](ctx, keySessionID)
	return v
}

func WithSessionID(ctx context.Context, sessionID id.SessionID) context.Context {
	return context.WithValue(ctx, keySessionID, sessionID)
}

func RequestID(ctx context.Context) string {
	v, _ := value[string](ctx, keyRequestID)
	return v
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

func ClientIP(ctx context.Context) string {
	v, _ := value[string](ctx, keyClientIP)
	return v
}

func UserAgent(ctx context.Context) string {
	v, _ := value[string](ctx, keyUserAgent)
	return v
}

// WithClientMetadata stores the caller's IP and raw User-Agent.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, keyClientIP, clientIP)
	return context.WithValue(ctx, keyUserAgent, userAgent)
}

// Now is the time stamped on the request by the requesttime middleware.
// Outside a request (workers, tests without WithTime) it is the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := value[time.Time](ctx, keyRequestTime); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, keyRequestTime, t)
}

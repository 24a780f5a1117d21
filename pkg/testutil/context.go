package testutil

import (
	"context"
	"net/http"

	id "travelgate/pkg/domain"
	"travelgate/pkg/requestcontext"
)

// WithSessionID adds a wizard session ID to the request context, as the
// session middleware would after validating the token.
func WithSessionID(req *http.Request, sessionID id.SessionID) *http.Request {
	return req.WithContext(requestcontext.WithSessionID(req.Context(), sessionID))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}

package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "travelgate/pkg/domain"
	"travelgate/pkg/requestcontext"
)

// TokenValidator defines the interface for validating session tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionClaims represents the claims we expect from the token validator
type SessionClaims struct {
	SessionID id.SessionID
	Flow      string
	JTI       string
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// RequireSession rejects requests without a valid token for flow and puts the
// session id on the request context.
func RequireSession(validator TokenValidator, flow string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing session token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid session token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired session")
				return
			}
			if claims.Flow != flow {
				logger.WarnContext(ctx, "unauthorized access - token issued for another flow",
					"flow", claims.Flow,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired session")
				return
			}

			ctx = requestcontext.WithSessionID(ctx, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession attaches the session id when a valid token for flow is
// present and otherwise passes the request through untouched.
func OptionalSession(validator TokenValidator, flow string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if claims, err := validator.ValidateToken(token); err == nil && claims.Flow == flow {
					r = r.WithContext(requestcontext.WithSessionID(r.Context(), claims.SessionID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

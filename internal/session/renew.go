package session

import (
	"log/slog"
	"net/http"
	"time"

	id "travelgate/pkg/domain"
	"travelgate/pkg/requestcontext"
)

// HeaderRenewedToken carries a fresh token on every successful response of an
// authenticated route. The stored session slides on use, so the browser
// swaps in this token to keep pace with it.
const HeaderRenewedToken = "X-Session-Token"

// Issuer signs session tokens.
type Issuer interface {
	Issue(sessionID id.SessionID, flow Flow, expiresIn time.Duration) (string, error)
}

// RenewToken re-issues the request's session token for another ttl. It runs
// after the auth middleware; error responses carry no token.
func RenewToken(issuer Issuer, flow Flow, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sid := requestcontext.SessionID(ctx)
			if sid.IsNil() {
				next.ServeHTTP(w, r)
				return
			}
			token, err := issuer.Issue(sid, flow, ttl)
			if err != nil {
				logger.WarnContext(ctx, "session token renewal failed",
					"request_id", requestcontext.RequestID(ctx),
					"session_id", sid.String(),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(&renewingWriter{ResponseWriter: w, token: token}, r)
		})
	}
}

type renewingWriter struct {
	http.ResponseWriter
	token       string
	wroteHeader bool
}

func (w *renewingWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if status < http.StatusBadRequest {
			w.Header().Set(HeaderRenewedToken, w.token)
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *renewingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *renewingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

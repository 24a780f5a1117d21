// Package httptransport assembles the public router: shared middleware,
// health and metrics endpoints, and each domain's routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"travelgate/internal/platform/metrics"
	platformmw "travelgate/internal/platform/middleware"
	"travelgate/pkg/platform/httputil"
	"travelgate/pkg/platform/middleware/metadata"
	"travelgate/pkg/platform/middleware/request"
	"travelgate/pkg/platform/middleware/requesttime"
)

const defaultRequestTimeout = 30 * time.Second

// Routes is implemented by every domain handler.
type Routes interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
	HealthChecks   map[string]HealthCheck
	// TrustedProxyHops feeds client IP resolution; see metadata.ClientMetadata.
	TrustedProxyHops int
}

// NewRouter wires middleware in a fixed order: recovery first so panics in
// any later layer are caught, then request identity, then logging.
func NewRouter(cfg Config, routes ...Routes) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata(cfg.TrustedProxyHops))
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.Timeout(timeout))
	r.Use(platformmw.Latency(cfg.Metrics))

	r.Get("/healthz", healthHandler(cfg.HealthChecks))
	r.Handle("/metrics", metrics.Handler())

	for _, rt := range routes {
		rt.Register(r)
	}
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}

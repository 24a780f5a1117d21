package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgate/pkg/testutil"
)

type panicRoutes struct{}

func (panicRoutes) Register(r chi.Router) {
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

func newTestRouter(checks map[string]HealthCheck) http.Handler {
	return NewRouter(Config{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		HealthChecks: checks,
	}, panicRoutes{})
}

func TestHealthz(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		router := newTestRouter(map[string]HealthCheck{
			"redis": func(context.Context) error { return nil },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Checks["redis"])
	})

	t.Run("failing check degrades", func(t *testing.T) {
		router := newTestRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return errors.New("connection refused") },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		resp := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "connection refused", resp.Checks["postgres"])
	})
}

func TestRouterMiddleware(t *testing.T) {
	router := newTestRouter(nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/boom"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(t, rr)
}

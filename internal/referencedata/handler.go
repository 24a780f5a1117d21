package referencedata

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"travelgate/internal/referencedata/models"
	"travelgate/pkg/platform/httputil"
	"travelgate/pkg/requestcontext"
)

// Lister is the read side the handler serves.
type Lister interface {
	Countries(ctx context.Context) ([]models.Country, error)
	Currencies(ctx context.Context) ([]models.Currency, error)
	EntryPoints(ctx context.Context, mode string) ([]models.EntryPoint, error)
}

type Handler struct {
	lists  Lister
	logger *slog.Logger
}

func NewHandler(lists Lister, logger *slog.Logger) *Handler {
	return &Handler{lists: lists, logger: logger}
}

// Register registers the reference routes. They need no session.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reference/countries", h.handleCountries)
	r.Get("/reference/currencies", h.handleCurrencies)
	r.Get("/reference/entry-points", h.handleEntryPoints)
}

func (h *Handler) handleCountries(w http.ResponseWriter, r *http.Request) {
	out, err := h.lists.Countries(r.Context())
	h.respond(w, r, out, err)
}

func (h *Handler) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	out, err := h.lists.Currencies(r.Context())
	h.respond(w, r, out, err)
}

func (h *Handler) handleEntryPoints(w http.ResponseWriter, r *http.Request) {
	out, err := h.lists.EntryPoints(r.Context(), r.URL.Query().Get("mode"))
	h.respond(w, r, out, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		ctx := r.Context()
		h.logger.WarnContext(ctx, "reference data request failed",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	httputil.WriteJSON(w, http.StatusOK, v)
}

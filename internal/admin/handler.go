// Package admin serves the operator view of the audit trail.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/platform/audit"
	"travelgate/pkg/platform/httputil"
	adminmw "travelgate/pkg/platform/middleware/admin"
	"travelgate/pkg/requestcontext"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

// Trail reads audit events back.
type Trail interface {
	ListBySession(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

type Handler struct {
	trail  Trail
	token  string
	logger *slog.Logger
}

func New(trail Trail, token string, logger *slog.Logger) *Handler {
	return &Handler{trail: trail, token: token, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/admin/audit", func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(h.token, h.logger))
		r.Get("/recent", h.handleRecent)
		r.Get("/sessions/{session_id}", h.handleSession)
	})
}

// EventResponse is one audit event as shown to operators.
type EventResponse struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	Timestamp       time.Time `json:"timestamp"`
	SessionID       string    `json:"session_id"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	Action          string    `json:"action"`
	FromStep        string    `json:"from_step,omitempty"`
	ToStep          string    `json:"to_step,omitempty"`
	Outcome         string    `json:"outcome,omitempty"`
	Reason          string    `json:"reason,omitempty"`
	RequestID       string    `json:"request_id,omitempty"`
	Device          string    `json:"device,omitempty"`
}

type TrailResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid, err := id.ParseSessionID(chi.URLParam(r, "session_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return
	}
	events, err := h.trail.ListBySession(ctx, sid)
	h.respond(ctx, w, events, err)
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = min(n, maxRecentLimit)
	}
	events, err := h.trail.ListRecent(ctx, limit)
	h.respond(ctx, w, events, err)
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, events []audit.Event, err error) {
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read audit trail",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit trail"))
		return
	}
	resp := TrailResponse{Events: make([]EventResponse, 0, len(events)), Total: len(events)}
	for _, e := range events {
		resp.Events = append(resp.Events, EventResponse{
			ID:              e.ID.String(),
			Category:        string(e.Category),
			Timestamp:       e.Timestamp,
			SessionID:       e.SessionID.String(),
			ReferenceNumber: e.ReferenceNumber.String(),
			Action:          e.Action,
			FromStep:        e.FromStep,
			ToStep:          e.ToStep,
			Outcome:         e.Outcome,
			Reason:          e.Reason,
			RequestID:       e.RequestID,
			Device:          e.Device,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

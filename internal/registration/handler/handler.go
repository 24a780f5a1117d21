// Package handler exposes tax-PIN registration over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"travelgate/internal/registration/models"
	"travelgate/internal/session"
	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/platform/httputil"
	"travelgate/pkg/platform/middleware/auth"
	"travelgate/pkg/platform/middleware/request"
	"travelgate/pkg/requestcontext"
)

type Service interface {
	Start(ctx context.Context, sessionID id.SessionID, t models.RegistrationType, phone string) (*models.Registration, error)
	Get(ctx context.Context, sessionID id.SessionID) (*models.Registration, error)
	SendOTP(ctx context.Context, sessionID id.SessionID) (*models.Registration, error)
	VerifyOTP(ctx context.Context, sessionID id.SessionID, code string) (*models.Registration, error)
	Submit(ctx context.Context, sessionID id.SessionID, details models.Details) (*models.Registration, models.Result, error)
}

type TokenIssuer interface {
	Issue(sessionID id.SessionID, flow session.Flow, expiresIn time.Duration) (string, error)
}

type Handler struct {
	logger     *slog.Logger
	service    Service
	tokens     TokenIssuer
	validator  auth.TokenValidator
	sessionTTL time.Duration
	startLimit func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithStartLimit guards session creation, typically with a per-IP limiter.
func WithStartLimit(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.startLimit = mw
	}
}

func New(svc Service, tokens TokenIssuer, validator auth.TokenValidator, sessionTTL time.Duration, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		logger:     logger,
		service:    svc,
		tokens:     tokens,
		validator:  validator,
		sessionTTL: sessionTTL,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Register(r chi.Router) {
	flow := string(session.FlowRegistration)
	r.Route("/registrations", func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		start := r.With(auth.OptionalSession(h.validator, flow))
		if h.startLimit != nil {
			start = start.With(h.startLimit)
		}
		start.Post("/", h.handleStart)

		r.Route("/current", func(r chi.Router) {
			r.Use(auth.RequireSession(h.validator, flow, h.logger))
			r.Use(session.RenewToken(h.tokens, session.FlowRegistration, h.sessionTTL, h.logger))
			r.Get("/", h.handleGet)
			r.Post("/otp/send", h.handleSendOTP)
			r.Post("/otp/verify", h.handleVerifyOTP)
			r.Post("/submit", h.handleSubmit)
		})
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req StartRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "start registration", err)
		return
	}
	reg, err := h.service.Start(ctx, requestcontext.SessionID(ctx), req.Type, req.Phone)
	if err != nil {
		h.fail(ctx, w, "start registration", err)
		return
	}
	token, err := h.tokens.Issue(reg.SessionID, session.FlowRegistration, h.sessionTTL)
	if err != nil {
		h.fail(ctx, w, "issue session token", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, StartResponse{
		SessionToken: token,
		Registration: toResponse(reg),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reg, err := h.service.Get(ctx, requestcontext.SessionID(ctx))
	h.respond(ctx, w, "get registration", reg, err)
}

func (h *Handler) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reg, err := h.service.SendOTP(ctx, requestcontext.SessionID(ctx))
	h.respond(ctx, w, "send phone otp", reg, err)
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req OTPVerifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "verify phone otp", err)
		return
	}
	reg, err := h.service.VerifyOTP(ctx, requestcontext.SessionID(ctx), req.Code)
	h.respond(ctx, w, "verify phone otp", reg, err)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req DetailsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "submit registration", err)
		return
	}
	reg, res, err := h.service.Submit(ctx, requestcontext.SessionID(ctx), req.toDetails())
	if err != nil {
		h.fail(ctx, w, "submit registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SubmitResponse{
		PIN:          reg.PIN,
		Message:      res.Message,
		Registration: toResponse(reg),
	})
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, op string, reg *models.Registration, err error) {
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(reg))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.SessionID(ctx).String(),
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, op+" failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, op+" rejected", attrs...)
	}
	httputil.WriteError(w, err)
}

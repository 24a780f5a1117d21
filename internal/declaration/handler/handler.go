// Package handler exposes the declaration wizard over HTTP. Each route maps to
// one wizard operation and answers with the refreshed wizard view.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"travelgate/internal/declaration/models"
	"travelgate/internal/declaration/service"
	"travelgate/internal/declaration/wizard"
	refmodels "travelgate/internal/referencedata/models"
	"travelgate/internal/session"
	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/platform/httputil"
	"travelgate/pkg/platform/middleware/auth"
	"travelgate/pkg/platform/middleware/request"
	"travelgate/pkg/requestcontext"
)

// Service defines the wizard operations the handler drives.
type Service interface {
	Start(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error)
	Get(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error)
	Abandon(ctx context.Context, sessionID id.SessionID) error
	UpdatePassenger(ctx context.Context, sessionID id.SessionID, u models.PassengerUpdate) (*models.Declaration, error)
	SetTaxPIN(ctx context.Context, sessionID id.SessionID, pin string) (*models.Declaration, error)
	SendOTP(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error)
	VerifyOTP(ctx context.Context, sessionID id.SessionID, code string) (*models.Declaration, error)
	UpdateTravel(ctx context.Context, sessionID id.SessionID, u models.TravelUpdate) (*models.Declaration, error)
	AddCountryVisited(ctx context.Context, sessionID id.SessionID, code string) (*models.Declaration, error)
	RemoveCountryVisited(ctx context.Context, sessionID id.SessionID, code string) (*models.Declaration, error)
	UpdateDeclarationFlags(ctx context.Context, sessionID id.SessionID, u models.DeclarationFlags) (*models.Declaration, error)
	SaveItem(ctx context.Context, sessionID id.SessionID, c models.Category, it models.Item) (*models.Declaration, error)
	RemoveItem(ctx context.Context, sessionID id.SessionID, c models.Category, index int) (*models.Declaration, error)
	Next(ctx context.Context, sessionID id.SessionID) (service.StepResult, error)
	Back(ctx context.Context, sessionID id.SessionID) (service.StepResult, error)
	Refresh(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error)
	Pay(ctx context.Context, sessionID id.SessionID, mode wizard.PaymentMode) (service.PaymentResult, error)
	SearchHSCodes(ctx context.Context, sessionID id.SessionID, query string) ([]refmodels.HSCode, error)
}

// TokenIssuer signs session tokens.
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

// WithStartLimit guards declaration creation, typically with a per-IP limiter.
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

// Register registers the declaration routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	flow := string(session.FlowDeclaration)
	r.Route("/declarations", func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		start := r.With(auth.OptionalSession(h.validator, flow))
		if h.startLimit != nil {
			start = start.With(h.startLimit)
		}
		start.Post("/", h.handleStart)

		r.Route("/current", func(r chi.Router) {
			r.Use(auth.RequireSession(h.validator, flow, h.logger))
			r.Use(session.RenewToken(h.tokens, session.FlowDeclaration, h.sessionTTL, h.logger))
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleAbandon)
			r.Put("/passenger", h.handleUpdatePassenger)
			r.Put("/passenger/pin", h.handleSetTaxPIN)
			r.Post("/otp/send", h.handleSendOTP)
			r.Post("/otp/verify", h.handleVerifyOTP)
			r.Put("/travel", h.handleUpdateTravel)
			r.Post("/countries-visited", h.handleAddCountry)
			r.Delete("/countries-visited/{code}", h.handleRemoveCountry)
			r.Put("/flags", h.handleUpdateFlags)
			r.Post("/items/{category}", h.handleSaveItem)
			r.Delete("/items/{category}/{index}", h.handleRemoveItem)
			r.Post("/next", h.handleNext)
			r.Post("/back", h.handleBack)
			r.Post("/refresh", h.handleRefresh)
			r.Post("/pay-now", h.handlePay(wizard.PayNow))
			r.Post("/pay-later", h.handlePay(wizard.PayLater))
			r.Get("/hs-codes", h.handleSearchHSCodes)
		})
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.service.Start(ctx, requestcontext.SessionID(ctx))
	if err != nil {
		h.fail(ctx, w, "start declaration", err)
		return
	}
	token, err := h.tokens.Issue(d.SessionID, session.FlowDeclaration, h.sessionTTL)
	if err != nil {
		h.fail(ctx, w, "issue session token", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, StartResponse{
		SessionToken: token,
		Declaration:  toResponse(d),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.service.Get(ctx, requestcontext.SessionID(ctx))
	h.respond(ctx, w, "get declaration", d, err)
}

func (h *Handler) handleAbandon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Abandon(ctx, requestcontext.SessionID(ctx)); err != nil {
		h.fail(ctx, w, "abandon declaration", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdatePassenger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PassengerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "update passenger", err)
		return
	}
	d, err := h.service.UpdatePassenger(ctx, requestcontext.SessionID(ctx), req.toUpdate())
	h.respond(ctx, w, "update passenger", d, err)
}

func (h *Handler) handleSetTaxPIN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req TaxPINRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "set tax pin", err)
		return
	}
	d, err := h.service.SetTaxPIN(ctx, requestcontext.SessionID(ctx), req.TaxPIN)
	h.respond(ctx, w, "set tax pin", d, err)
}

func (h *Handler) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.service.SendOTP(ctx, requestcontext.SessionID(ctx))
	h.respond(ctx, w, "send otp", d, err)
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req OTPVerifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "verify otp", err)
		return
	}
	d, err := h.service.VerifyOTP(ctx, requestcontext.SessionID(ctx), req.Code)
	h.respond(ctx, w, "verify otp", d, err)
}

func (h *Handler) handleUpdateTravel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req TravelRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "update travel", err)
		return
	}
	d, err := h.service.UpdateTravel(ctx, requestcontext.SessionID(ctx), req.toUpdate())
	h.respond(ctx, w, "update travel", d, err)
}

func (h *Handler) handleAddCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CountryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "add country visited", err)
		return
	}
	d, err := h.service.AddCountryVisited(ctx, requestcontext.SessionID(ctx), req.Code)
	h.respond(ctx, w, "add country visited", d, err)
}

func (h *Handler) handleRemoveCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.service.RemoveCountryVisited(ctx, requestcontext.SessionID(ctx), chi.URLParam(r, "code"))
	h.respond(ctx, w, "remove country visited", d, err)
}

func (h *Handler) handleUpdateFlags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req FlagsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "update declaration flags", err)
		return
	}
	d, err := h.service.UpdateDeclarationFlags(ctx, requestcontext.SessionID(ctx), req.toUpdate())
	h.respond(ctx, w, "update declaration flags", d, err)
}

func (h *Handler) handleSaveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := categoryParam(r)
	if err != nil {
		h.fail(ctx, w, "save item", err)
		return
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(raw) {
		h.fail(ctx, w, "save item", dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	it, err := models.DecodeItem(c, raw)
	if err != nil {
		h.fail(ctx, w, "save item", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid item for category"))
		return
	}
	d, err := h.service.SaveItem(ctx, requestcontext.SessionID(ctx), c, it)
	h.respond(ctx, w, "save item", d, err)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := categoryParam(r)
	if err != nil {
		h.fail(ctx, w, "remove item", err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.fail(ctx, w, "remove item", dErrors.New(dErrors.CodeBadRequest, "item index must be a number"))
		return
	}
	d, err := h.service.RemoveItem(ctx, requestcontext.SessionID(ctx), c, index)
	h.respond(ctx, w, "remove item", d, err)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.Next(ctx, requestcontext.SessionID(ctx))
	h.respondStep(ctx, w, "next step", res, err)
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.Back(ctx, requestcontext.SessionID(ctx))
	h.respondStep(ctx, w, "previous step", res, err)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.service.Refresh(ctx, requestcontext.SessionID(ctx))
	h.respond(ctx, w, "refresh declaration", d, err)
}

func (h *Handler) handlePay(mode wizard.PaymentMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		res, err := h.service.Pay(ctx, requestcontext.SessionID(ctx), mode)
		if err != nil {
			h.fail(ctx, w, string(mode), err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, PaymentResponse{
			Mode:          res.Payment.Mode,
			RedirectURL:   res.Payment.RedirectURL,
			InvoiceNumber: res.Payment.InvoiceNumber,
			Message:       res.Payment.Message,
			Declaration:   toResponse(res.Declaration),
		})
	}
}

func (h *Handler) handleSearchHSCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	codes, err := h.service.SearchHSCodes(ctx, requestcontext.SessionID(ctx), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(ctx, w, "search hs codes", err)
		return
	}
	out := make([]HSCodeResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, HSCodeResponse{Code: c.Code, Description: c.Description})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func categoryParam(r *http.Request) (models.Category, error) {
	c, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeNotFound, "unknown category")
	}
	return c, nil
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, op string, d *models.Declaration, err error) {
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) respondStep(ctx context.Context, w http.ResponseWriter, op string, res service.StepResult, err error) {
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	view := toResponse(res.Declaration)
	view.Warning = res.Outcome.Warning
	httputil.WriteJSON(w, http.StatusOK, view)
}

// fail logs at a level matching the error's class and writes the envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := dErrors.CodeOf(err)
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.SessionID(ctx).String(),
		"error", err,
	}
	if code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, op+" failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, op+" rejected", attrs...)
	}
	httputil.WriteError(w, err)
}

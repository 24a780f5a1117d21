// Package service runs wizard operations against stored sessions. Every
// mutation loads the declaration under the session's busy flag, applies one
// wizard operation, saves and emits an audit event.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"travelgate/internal/declaration/metrics"
	"travelgate/internal/declaration/models"
	"travelgate/internal/declaration/ports"
	"travelgate/internal/declaration/wizard"
	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/platform/audit"
	"travelgate/pkg/platform/sentinel"
	"travelgate/pkg/requestcontext"
)

const (
	defaultSessionTTL = 2 * time.Hour
	defaultBusyTTL    = 30 * time.Second
)

// Store keeps declarations for their TTL and owns the per-session busy flag.
type Store interface {
	Get(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error)
	Save(ctx context.Context, d *models.Declaration) error
	Delete(ctx context.Context, sessionID id.SessionID) error
	AcquireBusy(ctx context.Context, sessionID id.SessionID, ttl time.Duration) (string, error)
	ReleaseBusy(ctx context.Context, sessionID id.SessionID, token string) error
}

// Limiter throttles HS-code lookups per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Service struct {
	store   Store
	machine *wizard.Machine
	auditor ports.AuditPort
	limiter Limiter
	logger  *slog.Logger
	metrics *metrics.Metrics

	sessionTTL time.Duration
	busyTTL    time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditor(auditor ports.AuditPort) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func WithHSLimiter(l Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithBusyTTL bounds how long a crashed request can hold a session.
func WithBusyTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.busyTTL = ttl
		}
	}
}

func New(store Store, machine *wizard.Machine, opts ...Option) *Service {
	s := &Service{
		store:      store,
		machine:    machine,
		logger:     slog.Default(),
		sessionTTL: defaultSessionTTL,
		busyTTL:    defaultBusyTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionTTL is how long an idle declaration survives.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Start begins a declaration. With no usable session a new one is created
// and only persisted once a reference number was issued. An existing session
// back at landing re-enters the passenger step.
func (s *Service) Start(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error) {
	defer s.observe("start", time.Now())

	if !sessionID.IsNil() {
		if _, err := s.store.Get(ctx, sessionID); err == nil {
			return s.mutate(ctx, sessionID, func(d *models.Declaration) error {
				out, err := s.machine.Start(ctx, d)
				if err == nil {
					s.emitTransition(ctx, d, audit.EventDeclarationStarted, out)
				}
				return err
			})
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load declaration")
		}
	}

	now := requestcontext.Now(ctx)
	d := models.NewDeclaration(id.NewSessionID(), now, s.sessionTTL)
	ctx = requestcontext.WithSessionID(ctx, d.SessionID)
	out, err := s.machine.Start(ctx, d)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, d); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save declaration")
	}
	s.logger.InfoContext(ctx, "declaration started",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", d.SessionID.String(),
		"reference_number", d.Form.ReferenceNumber.String(),
	)
	s.emitTransition(ctx, d, audit.EventDeclarationStarted, out)
	return d, nil
}

// Get returns the current declaration.
func (s *Service) Get(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error) {
	return s.load(ctx, sessionID)
}

// Abandon discards the session's declaration.
func (s *Service) Abandon(ctx context.Context, sessionID id.SessionID) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to discard declaration")
	}
	return nil
}

func (s *Service) load(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error) {
	d, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "declaration session has expired, please start again")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load declaration")
	}
	if d.IsExpired(requestcontext.Now(ctx)) {
		return nil, dErrors.New(dErrors.CodeNotFound, "declaration session has expired, please start again")
	}
	return d, nil
}

// mutate applies fn under the busy flag. A second concurrent mutation of the
// same session is rejected, not queued. The declaration is saved only when fn
// succeeds; fn must leave it unchanged otherwise.
func (s *Service) mutate(ctx context.Context, sessionID id.SessionID, fn func(d *models.Declaration) error) (*models.Declaration, error) {
	token, err := s.store.AcquireBusy(ctx, sessionID, s.busyTTL)
	if err != nil {
		if errors.Is(err, sentinel.ErrBusy) {
			s.metrics.IncrementBusy()
			return nil, dErrors.New(dErrors.CodeConflict, "another request for this declaration is in progress")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock declaration")
	}
	defer func() {
		if err := s.store.ReleaseBusy(context.WithoutCancel(ctx), sessionID, token); err != nil {
			s.logger.WarnContext(ctx, "failed to release busy flag",
				"session_id", sessionID.String(),
				"error", err,
			)
		}
	}()

	d, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	d.Touch(requestcontext.Now(ctx), s.sessionTTL)
	if err := s.store.Save(ctx, d); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save declaration")
	}
	return d, nil
}

func (s *Service) observe(op string, start time.Time) {
	s.metrics.ObserveOperation(op, time.Since(start))
}

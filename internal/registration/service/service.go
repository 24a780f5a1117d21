// Package service runs the tax-PIN registration flow: select a type and
// phone, verify the phone by OTP, then submit applicant details.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"travelgate/internal/gateway"
	"travelgate/internal/notify"
	"travelgate/internal/registration/models"
	"travelgate/internal/registration/ports"
	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/platform/audit"
	"travelgate/pkg/platform/sentinel"
	"travelgate/pkg/requestcontext"
)

const (
	defaultSessionTTL  = 2 * time.Hour
	defaultBusyTTL     = 30 * time.Second
	defaultOTPCooldown = 60 * time.Second
)

// Store keeps registrations for their TTL and owns the per-session busy flag.
type Store interface {
	Get(ctx context.Context, sessionID id.SessionID) (*models.Registration, error)
	Save(ctx context.Context, r *models.Registration) error
	Delete(ctx context.Context, sessionID id.SessionID) error
	AcquireBusy(ctx context.Context, sessionID id.SessionID, ttl time.Duration) (string, error)
	ReleaseBusy(ctx context.Context, sessionID id.SessionID, token string) error
}

type Service struct {
	store     Store
	registrar ports.Registrar
	phones    ports.PhoneVerifier
	notifier  ports.Notifier
	auditor   ports.AuditPort
	logger    *slog.Logger

	sessionTTL  time.Duration
	busyTTL     time.Duration
	otpCooldown time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditor(auditor ports.AuditPort) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func WithOTPCooldown(d time.Duration) Option {
	return func(s *Service) {
		s.otpCooldown = d
	}
}

func New(store Store, registrar ports.Registrar, phones ports.PhoneVerifier, opts ...Option) *Service {
	s := &Service{
		store:       store,
		registrar:   registrar,
		phones:      phones,
		logger:      slog.Default(),
		sessionTTL:  defaultSessionTTL,
		busyTTL:     defaultBusyTTL,
		otpCooldown: defaultOTPCooldown,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Start records the registration type and phone. An unfinished registration
// on the same session is reused; changing the phone drops its verification.
func (s *Service) Start(ctx context.Context, sessionID id.SessionID, t models.RegistrationType, phone string) (*models.Registration, error) {
	phone = strings.TrimSpace(phone)
	if !t.IsValid() {
		return nil, dErrors.NewValidation("choose a registration type", map[string]string{"type": "Invalid"})
	}
	if fields := models.ValidatePhone(phone); fields != nil {
		return nil, dErrors.NewValidation("enter a valid phone number", fields)
	}

	if !sessionID.IsNil() {
		existing, err := s.store.Get(ctx, sessionID)
		switch {
		case err == nil && !existing.IsSubmitted():
			return s.mutate(ctx, sessionID, func(r *models.Registration) error {
				if r.Phone != phone {
					r.OTP = models.PhoneChallenge{}
				}
				r.Type = t
				r.Phone = phone
				return nil
			})
		case err != nil && !errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
		}
	}

	r := models.NewRegistration(id.NewSessionID(), t, phone, requestcontext.Now(ctx), s.sessionTTL)
	if err := s.store.Save(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save registration")
	}
	s.logger.InfoContext(ctx, "registration started",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", r.SessionID.String(),
		"type", string(t),
	)
	s.emit(ctx, r, audit.Event{Action: string(audit.EventRegistrationStarted), Outcome: string(t)})
	return r, nil
}

func (s *Service) Get(ctx context.Context, sessionID id.SessionID) (*models.Registration, error) {
	return s.load(ctx, sessionID)
}

// SendOTP sends a code to the selected phone, at most once per cooldown.
func (s *Service) SendOTP(ctx context.Context, sessionID id.SessionID) (*models.Registration, error) {
	r, err := s.mutate(ctx, sessionID, func(r *models.Registration) error {
		if r.IsSubmitted() {
			return dErrors.New(dErrors.CodeConflict, "registration already submitted")
		}
		now := requestcontext.Now(ctx)
		if r.OTP.Sent && !r.OTP.SentAt.IsZero() && now.Sub(r.OTP.SentAt) < s.otpCooldown {
			return dErrors.New(dErrors.CodeRateLimited, "please wait before requesting another code")
		}
		if err := s.phones.SendPhoneOTP(ctx, r.Phone); err != nil {
			s.logger.WarnContext(ctx, "phone OTP send failed",
				"request_id", requestcontext.RequestID(ctx),
				"session_id", r.SessionID.String(),
				"error", err,
			)
			return gateway.ToDomainError(err, "could not send a verification code, please try again")
		}
		r.OTP = models.PhoneChallenge{Sent: true, SentAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, r, audit.Event{Action: string(audit.EventOTPSent)})
	return r, nil
}

func (s *Service) VerifyOTP(ctx context.Context, sessionID id.SessionID, code string) (*models.Registration, error) {
	alreadyVerified := false
	r, err := s.mutate(ctx, sessionID, func(r *models.Registration) error {
		if !r.OTP.Sent {
			return dErrors.New(dErrors.CodeInvalidInput, "request a verification code first")
		}
		if r.OTP.Verified {
			alreadyVerified = true
			return nil
		}
		code = strings.TrimSpace(code)
		if code == "" {
			return dErrors.NewValidation("verification code is required", map[string]string{"code": "Required"})
		}
		if err := s.phones.VerifyPhoneOTP(ctx, r.Phone, code); err != nil {
			s.logger.WarnContext(ctx, "phone OTP verification failed",
				"request_id", requestcontext.RequestID(ctx),
				"session_id", r.SessionID.String(),
				"error", err,
			)
			return gateway.ToDomainError(err, "could not verify the code, please try again")
		}
		r.OTP.Verified = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !alreadyVerified {
		s.emit(ctx, r, audit.Event{Action: string(audit.EventOTPVerified)})
	}
	return r, nil
}

// Submit registers the applicant and relays the issued PIN to the verified
// phone.
func (s *Service) Submit(ctx context.Context, sessionID id.SessionID, details models.Details) (*models.Registration, models.Result, error) {
	var result models.Result
	r, err := s.mutate(ctx, sessionID, func(r *models.Registration) error {
		if r.IsSubmitted() {
			return dErrors.New(dErrors.CodeConflict, "registration already submitted")
		}
		if !r.OTP.Verified {
			return dErrors.New(dErrors.CodeForbidden, "verify your phone number before submitting")
		}
		details = details.Normalize()
		details.Type = r.Type
		if fields := details.Validate(); fields != nil {
			return dErrors.NewValidation("please complete the highlighted fields", fields)
		}

		res, err := s.registrar.RegisterTaxPIN(ctx, details.ToSubmission(r.Phone))
		if err != nil {
			s.logger.WarnContext(ctx, "tax PIN registration failed",
				"request_id", requestcontext.RequestID(ctx),
				"session_id", r.SessionID.String(),
				"error", err,
			)
			return gateway.ToDomainError(err, "could not complete the registration, please try again")
		}
		if res.PIN == "" {
			return dErrors.New(dErrors.CodeUnavailable, "registration did not return a PIN")
		}
		r.PIN = res.PIN
		result = res
		return nil
	})
	if err != nil {
		return nil, models.Result{}, err
	}

	s.logger.InfoContext(ctx, "tax PIN issued",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", r.SessionID.String(),
		"type", string(r.Type),
	)
	if s.notifier != nil {
		s.notifier.Notify(ctx, notify.Message{
			Kind:  notify.KindPINIssued,
			Phone: r.Phone,
			Text:  fmt.Sprintf("Your tax PIN is %s", r.PIN),
		})
	}
	s.emit(ctx, r, audit.Event{Action: string(audit.EventRegistrationSubmitted), Outcome: "pin_issued"})
	return r, result, nil
}

func (s *Service) load(ctx context.Context, sessionID id.SessionID) (*models.Registration, error) {
	r, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration session has expired, please start again")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	if r.IsExpired(requestcontext.Now(ctx)) {
		return nil, dErrors.New(dErrors.CodeNotFound, "registration session has expired, please start again")
	}
	return r, nil
}

func (s *Service) mutate(ctx context.Context, sessionID id.SessionID, fn func(r *models.Registration) error) (*models.Registration, error) {
	token, err := s.store.AcquireBusy(ctx, sessionID, s.busyTTL)
	if err != nil {
		if errors.Is(err, sentinel.ErrBusy) {
			return nil, dErrors.New(dErrors.CodeConflict, "another request for this registration is in progress")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock registration")
	}
	defer func() {
		if err := s.store.ReleaseBusy(context.WithoutCancel(ctx), sessionID, token); err != nil {
			s.logger.WarnContext(ctx, "failed to release busy flag",
				"session_id", sessionID.String(),
				"error", err,
			)
		}
	}()

	r, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	r.Touch(requestcontext.Now(ctx), s.sessionTTL)
	if err := s.store.Save(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save registration")
	}
	return r, nil
}

func (s *Service) emit(ctx context.Context, r *models.Registration, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.SessionID = r.SessionID
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", r.SessionID.String(),
			"action", event.Action,
			"error", err,
		)
	}
}

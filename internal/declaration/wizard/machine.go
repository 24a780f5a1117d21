// Package wizard is the declaration step machine. A Machine owns no state of
// its own: every operation takes the session's Declaration and mutates it in
// place, so callers load, apply and save under their own concurrency control.
package wizard

import (
	"context"
	"log/slog"
	"time"

	"travelgate/internal/declaration/metrics"
	"travelgate/internal/declaration/models"
	"travelgate/internal/declaration/ports"
	"travelgate/internal/gateway"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/requestcontext"
)

const (
	// HSSearchMinLength is the shortest query sent to the search collaborator.
	HSSearchMinLength = 3
	// HSSearchPageSize caps the candidates returned to the item modal.
	HSSearchPageSize = 5

	defaultOTPCooldown = 60 * time.Second
)

// Outcome reports a step change. Warning carries the collaborator's message
// when a rejected submission was tolerated.
type Outcome struct {
	From    models.Step
	To      models.Step
	Warning string
}

// Moved reports whether the step index changed.
func (o Outcome) Moved() bool {
	return o.From != o.To
}

type Machine struct {
	api         ports.DeclarationAPI
	pins        ports.TaxPINVerifier
	hsCodes     ports.HSCodeSearcher
	notifier    ports.Notifier
	logger      *slog.Logger
	metrics     *metrics.Metrics
	callbackURL string
	otpCooldown time.Duration
}

type Option func(*Machine)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Machine) {
		m.metrics = metrics
	}
}

// WithCallbackURL sets the URL the payment provider returns the user to.
func WithCallbackURL(url string) Option {
	return func(m *Machine) {
		m.callbackURL = url
	}
}

// WithOTPCooldown sets the minimum wait before a code can be re-sent.
func WithOTPCooldown(d time.Duration) Option {
	return func(m *Machine) {
		if d >= 0 {
			m.otpCooldown = d
		}
	}
}

func New(api ports.DeclarationAPI, pins ports.TaxPINVerifier, hsCodes ports.HSCodeSearcher, notifier ports.Notifier, opts ...Option) *Machine {
	m := &Machine{
		api:         api,
		pins:        pins,
		hsCodes:     hsCodes,
		notifier:    notifier,
		logger:      slog.Default(),
		otpCooldown: defaultOTPCooldown,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start leaves the landing step. A declaration that already holds a reference
// (the user went back to landing) re-enters the passenger step without asking
// for a new one. Without a reference the machine stays at landing.
func (m *Machine) Start(ctx context.Context, d *models.Declaration) (Outcome, error) {
	if d.Step != models.StepLanding {
		return Outcome{From: d.Step, To: d.Step}, dErrors.New(dErrors.CodeConflict, "declaration is already in progress")
	}
	out := Outcome{From: models.StepLanding, To: models.StepLanding}
	if !d.Form.HasReference() {
		ref, err := m.api.InitializeDeclaration(ctx)
		if err != nil {
			m.logger.WarnContext(ctx, "declaration initialization failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			m.metrics.IncrementTransition(out.From.String(), models.StepPassengerInfo.String(), "blocked_remote")
			return out, gateway.ToDomainError(err, "could not start a declaration, please try again")
		}
		if err := d.Form.Initialize(ref); err != nil {
			m.metrics.IncrementTransition(out.From.String(), models.StepPassengerInfo.String(), "blocked_remote")
			return out, err
		}
	}
	d.Step = models.StepPassengerInfo
	out.To = d.Step
	m.metrics.IncrementTransition(out.From.String(), out.To.String(), "advanced")
	return out, nil
}

// Next validates the active step, submits it and advances according to the
// step's policy. Validation failures never reach a collaborator.
func (m *Machine) Next(ctx context.Context, d *models.Declaration) (Outcome, error) {
	out := Outcome{From: d.Step, To: d.Step}
	t, ok := transitions[d.Step]
	if !ok {
		switch d.Step {
		case models.StepLanding:
			return out, dErrors.New(dErrors.CodeConflict, "declaration has not been started")
		default:
			return out, dErrors.New(dErrors.CodeConflict, "choose pay now or pay later to finish")
		}
	}
	if !d.Form.HasReference() {
		return out, dErrors.New(dErrors.CodeInvariantViolation, "declaration has no reference number")
	}
	if d.Checkout != nil {
		return out, dErrors.New(dErrors.CodeConflict, "declaration has already been submitted for payment")
	}

	if err := t.validate(d.Form); err != nil {
		m.metrics.IncrementTransition(t.from.String(), t.to.String(), "blocked_validation")
		return out, err
	}

	outcome := "advanced"
	if err := t.submit(ctx, m, d.Form); err != nil {
		if !t.advanceOnRemoteFailure || !gateway.IsRejected(err) {
			m.logger.WarnContext(ctx, "step submission failed",
				"request_id", requestcontext.RequestID(ctx),
				"reference_number", d.Form.ReferenceNumber.String(),
				"step", t.from.String(),
				"error", err,
			)
			m.metrics.IncrementTransition(t.from.String(), t.to.String(), "blocked_remote")
			return out, gateway.ToDomainError(err, t.failureMessage)
		}
		m.logger.InfoContext(ctx, "step submission rejected, advancing",
			"request_id", requestcontext.RequestID(ctx),
			"reference_number", d.Form.ReferenceNumber.String(),
			"step", t.from.String(),
			"error", err,
		)
		out.Warning = gateway.RemoteMessage(err)
		if out.Warning == "" {
			out.Warning = t.failureMessage
		}
		outcome = "advanced_with_warning"
	}

	d.Step = t.to
	out.To = d.Step
	m.metrics.IncrementTransition(out.From.String(), out.To.String(), outcome)
	return out, nil
}

// Back moves one step towards landing without validating or clearing
// anything. It is a no-op at landing.
func (m *Machine) Back(ctx context.Context, d *models.Declaration) Outcome {
	out := Outcome{From: d.Step, To: d.Step}
	if d.Step == models.StepLanding {
		return out
	}
	d.Step--
	out.To = d.Step
	m.metrics.IncrementTransition(out.From.String(), out.To.String(), "back")
	return out
}

// Refresh merges the remote snapshot's non-empty fields into the form.
func (m *Machine) Refresh(ctx context.Context, d *models.Declaration) error {
	if !d.Form.HasReference() {
		return dErrors.New(dErrors.CodeConflict, "declaration has not been started")
	}
	snap, err := m.api.GetDeclaration(ctx, d.Form.ReferenceNumber)
	if err != nil {
		m.logger.WarnContext(ctx, "declaration refresh failed",
			"request_id", requestcontext.RequestID(ctx),
			"reference_number", d.Form.ReferenceNumber.String(),
			"error", err,
		)
		return gateway.ToDomainError(err, "could not load your declaration, please try again")
	}
	if snap == nil {
		return nil
	}
	return d.Form.MergeSnapshot(snap)
}

func requireStarted(d *models.Declaration) error {
	if d.Step == models.StepLanding || !d.Form.HasReference() {
		return dErrors.New(dErrors.CodeConflict, "declaration has not been started")
	}
	return nil
}

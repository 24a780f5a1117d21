package service

import (
	"context"
	"time"

	"travelgate/internal/declaration/models"
	"travelgate/internal/declaration/wizard"
	id "travelgate/pkg/domain"
	"travelgate/pkg/platform/audit"
)

// StepResult is a declaration after a navigation operation.
type StepResult struct {
	Declaration *models.Declaration
	Outcome     wizard.Outcome
}

func (s *Service) Next(ctx context.Context, sessionID id.SessionID) (StepResult, error) {
	defer s.observe("next", time.Now())

	var out wizard.Outcome
	d, err := s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		var err error
		out, err = s.machine.Next(ctx, d)
		return err
	})
	if err != nil {
		return StepResult{}, err
	}
	action := audit.EventStepAdvanced
	if out.From == models.StepDeclarations {
		action = audit.EventItemsSubmitted
	}
	s.emitTransition(ctx, d, action, out)
	return StepResult{Declaration: d, Outcome: out}, nil
}

func (s *Service) Back(ctx context.Context, sessionID id.SessionID) (StepResult, error) {
	var out wizard.Outcome
	d, err := s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		out = s.machine.Back(ctx, d)
		return nil
	})
	if err != nil {
		return StepResult{}, err
	}
	if out.Moved() {
		s.emitTransition(ctx, d, audit.EventStepBack, out)
	}
	return StepResult{Declaration: d, Outcome: out}, nil
}

func (s *Service) Refresh(ctx context.Context, sessionID id.SessionID) (*models.Declaration, error) {
	defer s.observe("refresh", time.Now())

	d, err := s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		return s.machine.Refresh(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, d, audit.Event{Action: string(audit.EventDeclarationRefreshed)})
	return d, nil
}

// PaymentResult is a declaration after finalizing.
type PaymentResult struct {
	Declaration *models.Declaration
	Payment     wizard.Payment
}

func (s *Service) Pay(ctx context.Context, sessionID id.SessionID, mode wizard.PaymentMode) (PaymentResult, error) {
	defer s.observe(string(mode), time.Now())

	var (
		p        wizard.Payment
		replayed bool
	)
	d, err := s.mutate(ctx, sessionID, func(d *models.Declaration) error {
		replayed = d.Checkout != nil
		var err error
		p, err = s.machine.Pay(ctx, d, mode)
		return err
	})
	if err != nil {
		return PaymentResult{}, err
	}
	if replayed {
		return PaymentResult{Declaration: d, Payment: p}, nil
	}
	outcome := "completed"
	if d.Checkout != nil && d.Checkout.HasCheckout() {
		outcome = "checkout_issued"
	}
	s.emit(ctx, d, audit.Event{
		Action:  string(audit.EventDeclarationFinalized),
		Outcome: outcome,
		Reason:  string(mode),
	})
	return PaymentResult{Declaration: d, Payment: p}, nil
}

package service

import (
	"context"

	"travelgate/internal/declaration/models"
	"travelgate/internal/declaration/wizard"
	"travelgate/pkg/platform/audit"
	"travelgate/pkg/requestcontext"
)

func (s *Service) emitTransition(ctx context.Context, d *models.Declaration, action audit.AuditEvent, out wizard.Outcome) {
	outcome := "advanced"
	if out.Warning != "" {
		outcome = "advanced_with_warning"
	}
	if action == audit.EventStepBack {
		outcome = "back"
	}
	s.emit(ctx, d, audit.Event{
		Action:   string(action),
		FromStep: out.From.String(),
		ToStep:   out.To.String(),
		Outcome:  outcome,
		Reason:   out.Warning,
	})
}

// emit is best-effort: a failed audit write is logged and never fails the
// request.
func (s *Service) emit(ctx context.Context, d *models.Declaration, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.SessionID = d.SessionID
	event.ReferenceNumber = d.Form.ReferenceNumber
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", d.SessionID.String(),
			"action", event.Action,
			"error", err,
		)
	}
}

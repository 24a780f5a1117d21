package audit

import (
	"context"
	"time"

	id "travelgate/pkg/domain"
)

// EventCategory classifies events by their primary purpose so sinks can
// apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers outcomes with legal significance: a
	// declaration was finalized, a PIN was issued.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers verification activity worth monitoring.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine wizard navigation.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted by services on every wizard transition. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID              id.EventID         `json:"id"`
	Category        EventCategory      `json:"category"`
	Timestamp       time.Time          `json:"timestamp"`
	SessionID       id.SessionID       `json:"session_id"`
	ReferenceNumber id.ReferenceNumber `json:"reference_number,omitempty"`
	Action          string             `json:"action"`
	FromStep        string             `json:"from_step,omitempty"`
	ToStep          string             `json:"to_step,omitempty"`
	Outcome         string             `json:"outcome,omitempty"`
	Reason          string             `json:"reason,omitempty"`
	RequestID       string             `json:"request_id,omitempty"`
	ClientIP        string             `json:"client_ip,omitempty"`
	Device          string             `json:"device,omitempty"`
}

type AuditEvent string

const (
	// Declaration wizard
	EventDeclarationStarted   AuditEvent = "declaration_started"
	EventStepAdvanced         AuditEvent = "step_advanced"
	EventStepBack             AuditEvent = "step_back"
	EventDeclarationRefreshed AuditEvent = "declaration_refreshed"
	EventItemsSubmitted       AuditEvent = "items_submitted"
	EventDeclarationFinalized AuditEvent = "declaration_finalized"

	// Verification
	EventOTPSent     AuditEvent = "otp_sent"
	EventOTPVerified AuditEvent = "otp_verified"

	// Registration
	EventRegistrationStarted   AuditEvent = "registration_started"
	EventRegistrationSubmitted AuditEvent = "registration_submitted"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventDeclarationFinalized:  CategoryCompliance,
	EventRegistrationSubmitted: CategoryCompliance,

	EventOTPSent:     CategorySecurity,
	EventOTPVerified: CategorySecurity,

	EventDeclarationStarted:   CategoryOperations,
	EventStepAdvanced:         CategoryOperations,
	EventStepBack:             CategoryOperations,
	EventDeclarationRefreshed: CategoryOperations,
	EventItemsSubmitted:       CategoryOperations,
	EventRegistrationStarted:  CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists or forwards events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

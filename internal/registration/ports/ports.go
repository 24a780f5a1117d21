// Package ports declares the collaborators the registration flow calls.
package ports

import (
	"context"

	"travelgate/internal/notify"
	"travelgate/internal/registration/models"
	"travelgate/pkg/platform/audit"
)

// Registrar submits PIN applications.
type Registrar interface {
	RegisterTaxPIN(ctx context.Context, sub models.Submission) (models.Result, error)
}

// PhoneVerifier issues and checks one-time codes for a phone number.
type PhoneVerifier interface {
	SendPhoneOTP(ctx context.Context, phone string) error
	VerifyPhoneOTP(ctx context.Context, phone, code string) error
}

// Notifier relays the issued PIN. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message)
}

// AuditPort defines the interface for emitting audit events.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}

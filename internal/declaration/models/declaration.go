package models

import (
	"time"

	id "travelgate/pkg/domain"
)

// Declaration is one wizard session's state: the step index and the form.
// It is ephemeral and expires with the session.
type Declaration struct {
	SessionID id.SessionID     `json:"session_id"`
	Step      Step             `json:"step"`
	Form      *DeclarationForm `json:"form"`
	Checkout  *FinalizeResult  `json:"checkout,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// NewDeclaration returns a declaration at the landing step.
func NewDeclaration(sessionID id.SessionID, now time.Time, ttl time.Duration) *Declaration {
	return &Declaration{
		SessionID: sessionID,
		Step:      StepLanding,
		Form:      NewDeclarationForm(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the session has outlived its TTL.
func (d *Declaration) IsExpired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}

// Touch records a mutation and slides the expiry forward.
func (d *Declaration) Touch(now time.Time, ttl time.Duration) {
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(ttl)
}

package models

import (
	"strings"
	"time"

	id "travelgate/pkg/domain"
)

// RegistrationType is the PIN registration sub-flow.
type RegistrationType string

const (
	TypeIndividual    RegistrationType = "individual"
	TypeNonIndividual RegistrationType = "non_individual"
)

func (t RegistrationType) IsValid() bool {
	return t == TypeIndividual || t == TypeNonIndividual
}

// PhoneChallenge tracks OTP verification of the selected phone.
type PhoneChallenge struct {
	Sent     bool      `json:"sent"`
	Verified bool      `json:"verified"`
	SentAt   time.Time `json:"sent_at,omitzero"`
}

// Registration is one tax-PIN registration session. Like declarations it is
// ephemeral and expires with the session.
type Registration struct {
	SessionID id.SessionID     `json:"session_id"`
	Type      RegistrationType `json:"type"`
	Phone     string           `json:"phone"`
	OTP       PhoneChallenge   `json:"otp"`
	PIN       string           `json:"pin,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// NewRegistration starts a registration for a selected phone.
func NewRegistration(sessionID id.SessionID, t RegistrationType, phone string, now time.Time, ttl time.Duration) *Registration {
	return &Registration{
		SessionID: sessionID,
		Type:      t,
		Phone:     strings.TrimSpace(phone),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Touch records a mutation and slides the expiry forward.
func (r *Registration) Touch(now time.Time, ttl time.Duration) {
	r.UpdatedAt = now
	r.ExpiresAt = now.Add(ttl)
}

// IsSubmitted reports whether a PIN was issued.
func (r *Registration) IsSubmitted() bool {
	return r.PIN != ""
}

// IsExpired reports whether the session has outlived its TTL.
func (r *Registration) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// Details are the applicant fields collected before submission. Which ones
// are required depends on the registration type.
type Details struct {
	FirstName          string `json:"first_name" validate:"required_if=Type individual"`
	Surname            string `json:"surname" validate:"required_if=Type individual"`
	IDNumber           string `json:"id_number" validate:"required_if=Type individual"`
	DateOfBirth        string `json:"date_of_birth" validate:"required_if=Type individual"`
	BusinessName       string `json:"business_name" validate:"required_if=Type non_individual"`
	RegistrationNumber string `json:"registration_number" validate:"required_if=Type non_individual"`
	Email              string `json:"email" validate:"required,email"`
	PostalAddress      string `json:"postal_address"`

	Type RegistrationType `json:"-"`
}

// Normalize trims every field and upper-cases identifiers.
func (d Details) Normalize() Details {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.Surname = strings.TrimSpace(d.Surname)
	d.IDNumber = strings.ToUpper(strings.TrimSpace(d.IDNumber))
	d.DateOfBirth = strings.TrimSpace(d.DateOfBirth)
	d.BusinessName = strings.TrimSpace(d.BusinessName)
	d.RegistrationNumber = strings.ToUpper(strings.TrimSpace(d.RegistrationNumber))
	d.Email = strings.TrimSpace(d.Email)
	d.PostalAddress = strings.TrimSpace(d.PostalAddress)
	return d
}

// Submission is the PIN registration request body.
type Submission struct {
	Type               RegistrationType `json:"type"`
	Phone              string           `json:"phone"`
	FirstName          string           `json:"first_name,omitempty"`
	Surname            string           `json:"surname,omitempty"`
	IDNumber           string           `json:"id_number,omitempty"`
	DateOfBirth        string           `json:"date_of_birth,omitempty"`
	BusinessName       string           `json:"business_name,omitempty"`
	RegistrationNumber string           `json:"registration_number,omitempty"`
	Email              string           `json:"email"`
	PostalAddress      string           `json:"postal_address,omitempty"`
}

// Result is the registration answer.
type Result struct {
	PIN     string `json:"pin"`
	Message string `json:"message"`
}

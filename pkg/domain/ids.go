// Package domain holds typed identifiers shared across modules. Parsing
// happens once at trust boundaries; services only see typed values.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "travelgate/pkg/domain-errors"
)

// SessionID identifies one wizard session (declaration or registration).
type SessionID uuid.UUID

// EventID identifies one analytics/audit event.
type EventID uuid.UUID

// ReferenceNumber is the remote identifier of one in-progress declaration.
type ReferenceNumber string

// NewSessionID returns a random session id.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// NewEventID returns a random event id.
func NewEventID() EventID { return EventID(uuid.New()) }

func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id SessionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id EventID) String() string   { return uuid.UUID(id).String() }

func (r ReferenceNumber) String() string { return string(r) }
func (r ReferenceNumber) IsZero() bool   { return strings.TrimSpace(string(r)) == "" }

// ParseSessionID parses a non-nil UUID session id.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session id")
	return SessionID(u), err
}

// ParseEventID parses a non-nil UUID event id.
func ParseEventID(s string) (EventID, error) {
	u, err := parseUUID(s, "event id")
	return EventID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}

// MarshalText encodes the id in canonical UUID form.
func (id SessionID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText decodes a canonical UUID.
func (id *SessionID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = SessionID(u)
	return nil
}

// MarshalText encodes the id in canonical UUID form.
func (id EventID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText decodes a canonical UUID.
func (id *EventID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = EventID(u)
	return nil
}

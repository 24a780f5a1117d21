package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "travelgate/pkg/domain"
	audit "travelgate/pkg/platform/audit"
)

// Store implements audit.Store on the audit_events table. Appends are
// idempotent on the event id so a retried emit does not duplicate rows.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id               UUID PRIMARY KEY,
	category         TEXT NOT NULL,
	timestamp        TIMESTAMPTZ NOT NULL,
	session_id       UUID NOT NULL,
	reference_number TEXT NOT NULL DEFAULT '',
	action           TEXT NOT NULL,
	from_step        TEXT NOT NULL DEFAULT '',
	to_step          TEXT NOT NULL DEFAULT '',
	outcome          TEXT NOT NULL DEFAULT '',
	reason           TEXT NOT NULL DEFAULT '',
	request_id       TEXT NOT NULL DEFAULT '',
	client_ip        TEXT NOT NULL DEFAULT '',
	device           TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS audit_events_session_idx ON audit_events (session_id, timestamp);
`

// Migrate creates the audit table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate audit_events: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.UUID(event.ID)
	if eventID == uuid.Nil {
		eventID = uuid.New()
	}
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}

	query := `
		INSERT INTO audit_events (
			id, category, timestamp, session_id, reference_number, action,
			from_step, to_step, outcome, reason, request_id, client_ip, device
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		eventID,
		string(category),
		event.Timestamp,
		uuid.UUID(event.SessionID),
		string(event.ReferenceNumber),
		event.Action,
		event.FromStep,
		event.ToStep,
		event.Outcome,
		event.Reason,
		event.RequestID,
		event.ClientIP,
		event.Device,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListBySession returns a session's events, oldest first.
func (s *Store) ListBySession(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error) {
	query := `
		SELECT id, category, timestamp, session_id, reference_number, action,
			   from_step, to_step, outcome, reason, request_id, client_ip, device
		FROM audit_events
		WHERE session_id = $1
		ORDER BY timestamp ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(sessionID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListRecent returns the N most recent events.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `
		SELECT id, category, timestamp, session_id, reference_number, action,
			   from_step, to_step, outcome, reason, request_id, client_ip, device
		FROM audit_events
		ORDER BY timestamp DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event

	for rows.Next() {
		var (
			event     audit.Event
			eventID   uuid.UUID
			sessionID uuid.UUID
			category  string
			reference string
		)
		err := rows.Scan(
			&eventID,
			&category,
			&event.Timestamp,
			&sessionID,
			&reference,
			&event.Action,
			&event.FromStep,
			&event.ToStep,
			&event.Outcome,
			&event.Reason,
			&event.RequestID,
			&event.ClientIP,
			&event.Device,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.ID = id.EventID(eventID)
		event.SessionID = id.SessionID(sessionID)
		event.Category = audit.EventCategory(category)
		event.ReferenceNumber = id.ReferenceNumber(reference)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

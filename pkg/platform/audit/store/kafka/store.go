// Package kafka streams audit events to a topic as JSON, keyed by session id
// so one session's trail stays ordered within a partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	audit "travelgate/pkg/platform/audit"
)

// Producer writes one record to the audit topic.
type Producer interface {
	Publish(ctx context.Context, key, value []byte) error
}

type Store struct {
	producer Producer
}

func New(producer Producer) *Store {
	return &Store{producer: producer}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	if err := s.producer.Publish(ctx, []byte(event.SessionID.String()), payload); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

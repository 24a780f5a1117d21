package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "travelgate/pkg/domain"
	audit "travelgate/pkg/platform/audit"
)

type recordingProducer struct {
	keys   [][]byte
	values [][]byte
	err    error
}

func (p *recordingProducer) Publish(_ context.Context, key, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return nil
}

func TestStore_AppendKeysBySession(t *testing.T) {
	producer := &recordingProducer{}
	store := New(producer)
	sessionID := id.NewSessionID()

	err := store.Append(context.Background(), audit.Event{
		SessionID:       sessionID,
		ReferenceNumber: "DEC-42",
		Action:          string(audit.EventDeclarationFinalized),
		Category:        audit.CategoryCompliance,
	})
	require.NoError(t, err)
	require.Len(t, producer.keys, 1)
	assert.Equal(t, sessionID.String(), string(producer.keys[0]))

	var got map[string]any
	require.NoError(t, json.Unmarshal(producer.values[0], &got))
	assert.Equal(t, "declaration_finalized", got["action"])
	assert.Equal(t, "DEC-42", got["reference_number"])
	assert.Equal(t, sessionID.String(), got["session_id"])
}

func TestStore_AppendWrapsProducerError(t *testing.T) {
	store := New(&recordingProducer{err: errors.New("broker down")})

	err := store.Append(context.Background(), audit.Event{Action: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"travelgate/internal/platform/config"
	platformkafka "travelgate/internal/platform/kafka"
	id "travelgate/pkg/domain"
	audit "travelgate/pkg/platform/audit"
	"travelgate/pkg/testutil/containers"
)

func TestStore_PublishesToTopic(t *testing.T) {
	kc := containers.GetManager().GetKafka(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "audit-it-" + id.NewEventID().String()
	producer, err := platformkafka.NewProducer(ctx, config.KafkaConfig{Brokers: kc.Brokers, AuditTopic: topic})
	require.NoError(t, err)
	defer func() { _ = producer.Close(context.Background()) }()
	require.NoError(t, producer.EnsureTopic(ctx, 1, 1))

	sessionID := id.NewSessionID()
	store := New(producer)
	require.NoError(t, store.Append(ctx, audit.Event{
		ID:        id.NewEventID(),
		SessionID: sessionID,
		Action:    string(audit.EventStepAdvanced),
		ToStep:    "travel_info",
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(kc.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, sessionID.String(), string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, sessionID, got.SessionID)
	require.Equal(t, "travel_info", got.ToStep)
}

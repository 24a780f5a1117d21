package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	id "travelgate/pkg/domain"
	audit "travelgate/pkg/platform/audit"
	"travelgate/pkg/platform/audit/store/memory"
	"travelgate/pkg/platform/circuit"
	"travelgate/pkg/requestcontext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventDeclarationStarted),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventDeclarationStarted), events[0].Action)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
	assert.False(t, events[0].ID == (id.EventID{}), "event id should be assigned")
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))
	defer pub.Close()

	sessionID := id.NewSessionID()
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventOTPVerified),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		events, err := pub.List(context.Background(), sessionID)
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	sessionID := id.NewSessionID()

	for range 10 {
		event := audit.Event{
			SessionID: sessionID,
			Action:    string(audit.EventStepAdvanced),
		}
		err := pub.Emit(context.Background(), event)
		require.NoError(t, err)
	}

	pub.Close()

	events, err := store.ListBySession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()

	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventStepBack)})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	sessionID := id.NewSessionID()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), audit.Event{
				SessionID: sessionID,
				Action:    string(audit.EventStepAdvanced),
			})
			if err != nil {
				assert.ErrorIs(t, err, ErrBufferFull)
			}
		}()
	}
	wg.Wait()
}

func TestPublisher_EnrichesFromContext(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithSessionID(context.Background(), sessionID)
	ctx = requestcontext.WithRequestID(ctx, "req-123")
	ctx = requestcontext.WithTime(ctx, fixed)
	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.7",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	require.NoError(t, pub.Emit(ctx, audit.Event{Action: string(audit.EventDeclarationFinalized)}))

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	got := events[0]
	assert.Equal(t, fixed, got.Timestamp)
	assert.Equal(t, "req-123", got.RequestID)
	assert.Equal(t, "10.0.0.7", got.ClientIP)
	assert.Equal(t, audit.CategoryCompliance, got.Category)
	assert.Contains(t, got.Device, "Chrome")
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()
	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventStepAdvanced),
		Timestamp: customTime,
	}

	require.NoError(t, pub.Emit(context.Background(), event))

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_MultipleEvents(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()

	events := []audit.Event{
		{SessionID: sessionID, Action: string(audit.EventDeclarationStarted)},
		{SessionID: sessionID, Action: string(audit.EventStepAdvanced)},
		{SessionID: sessionID, Action: string(audit.EventDeclarationFinalized)},
	}
	for _, event := range events {
		require.NoError(t, pub.Emit(context.Background(), event))
	}

	result, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, string(audit.EventDeclarationStarted), result[0].Action)
	assert.Equal(t, string(audit.EventStepAdvanced), result[1].Action)
	assert.Equal(t, string(audit.EventDeclarationFinalized), result[2].Action)
}

type failingStore struct {
	mu    sync.Mutex
	calls int
}

func (s *failingStore) Append(context.Context, audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errors.New("disk full")
}

func TestPublisher_BreakerDropsWhileOpen(t *testing.T) {
	store := &failingStore{}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("audit-test",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	pub := NewPublisher(store, WithBreaker(breaker))
	defer pub.Close()

	ev := audit.Event{Action: string(audit.EventStepAdvanced)}
	require.Error(t, pub.Emit(context.Background(), ev))
	require.Error(t, pub.Emit(context.Background(), ev))
	require.True(t, breaker.IsOpen())

	// Dropped silently while the cooldown runs.
	require.NoError(t, pub.Emit(context.Background(), ev))
	assert.Equal(t, 2, store.calls)

	now = now.Add(2 * time.Minute)
	require.Error(t, pub.Emit(context.Background(), ev))
	assert.Equal(t, 3, store.calls)
}

func TestPublisher_ListUnsupported(t *testing.T) {
	pub := NewPublisher(&failingStore{})
	defer pub.Close()

	_, err := pub.List(context.Background(), id.NewSessionID())
	assert.Error(t, err)
}

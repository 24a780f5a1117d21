package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	id "travelgate/pkg/domain"
)

type countingStore struct {
	calls int
	err   error
}

func (s *countingStore) Append(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestFanout_AttemptsEveryStore(t *testing.T) {
	failing := &countingStore{err: errors.New("kafka down")}
	ok := &countingStore{}

	err := Fanout{failing, ok}.Append(context.Background(), Event{Action: string(EventStepAdvanced)})

	assert.ErrorContains(t, err, "kafka down")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)
}

func TestAuditEvent_Category(t *testing.T) {
	assert.Equal(t, CategoryCompliance, EventDeclarationFinalized.Category())
	assert.Equal(t, CategorySecurity, EventOTPSent.Category())
	assert.Equal(t, CategoryOperations, AuditEvent("something_new").Category())
}

type readableStore struct {
	countingStore
	events []Event
}

func (s *readableStore) ListBySession(context.Context, id.SessionID) ([]Event, error) {
	return s.events, nil
}

func (s *readableStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	return s.events[:min(limit, len(s.events))], nil
}

func TestFanout_ReadsFromFirstReader(t *testing.T) {
	reader := &readableStore{events: []Event{{Action: "a"}, {Action: "b"}}}
	f := Fanout{&countingStore{}, reader}

	events, err := f.ListBySession(context.Background(), id.NewSessionID())
	assert.NoError(t, err)
	assert.Len(t, events, 2)

	recent, err := f.ListRecent(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, recent, 1)

	_, err = Fanout{&countingStore{}}.ListRecent(context.Background(), 1)
	assert.Error(t, err)
}

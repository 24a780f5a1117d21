//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "travelgate/pkg/domain"
	audit "travelgate/pkg/platform/audit"
	"travelgate/pkg/testutil/containers"
)

type StoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = New(s.pg.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *StoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "audit_events"))
}

func (s *StoreSuite) TestAppendAndListBySession() {
	ctx := context.Background()
	sessionID := id.NewSessionID()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	first := audit.Event{
		ID:              id.NewEventID(),
		SessionID:       sessionID,
		ReferenceNumber: "DEC-001",
		Action:          string(audit.EventStepAdvanced),
		FromStep:        "passenger_info",
		ToStep:          "travel_info",
		Outcome:         "advanced",
		Timestamp:       base,
	}
	second := audit.Event{
		ID:        id.NewEventID(),
		SessionID: sessionID,
		Action:    string(audit.EventDeclarationFinalized),
		Timestamp: base.Add(time.Minute),
	}
	s.Require().NoError(s.store.Append(ctx, second))
	s.Require().NoError(s.store.Append(ctx, first))
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		SessionID: id.NewSessionID(),
		Action:    string(audit.EventStepBack),
		Timestamp: base,
	}))

	events, err := s.store.ListBySession(ctx, sessionID)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(first.ID, events[0].ID)
	s.Equal(id.ReferenceNumber("DEC-001"), events[0].ReferenceNumber)
	s.Equal("travel_info", events[0].ToStep)
	s.Equal(audit.CategoryOperations, events[0].Category)
	s.Equal(audit.CategoryCompliance, events[1].Category)
}

func (s *StoreSuite) TestAppendIsIdempotent() {
	ctx := context.Background()
	ev := audit.Event{
		ID:        id.NewEventID(),
		SessionID: id.NewSessionID(),
		Action:    string(audit.EventOTPSent),
		Timestamp: time.Now().UTC(),
	}
	s.Require().NoError(s.store.Append(ctx, ev))
	s.Require().NoError(s.store.Append(ctx, ev))

	events, err := s.store.ListBySession(ctx, ev.SessionID)
	s.Require().NoError(err)
	s.Len(events, 1)
}

func (s *StoreSuite) TestListRecent() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)
	for i := range 3 {
		s.Require().NoError(s.store.Append(ctx, audit.Event{
			SessionID: id.NewSessionID(),
			Action:    string(audit.EventStepAdvanced),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	events, err := s.store.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.True(events[0].Timestamp.After(events[1].Timestamp))
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgate/internal/registration/models"
	id "travelgate/pkg/domain"
	"travelgate/pkg/platform/sentinel"
)

func TestInMemoryStore_ExpiredRegistrationIsGone(t *testing.T) {
	ctx := context.Background()
	st := NewInMemoryStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	r := models.NewRegistration(id.NewSessionID(), models.TypeIndividual, "+254711000111", now, time.Minute)
	require.NoError(t, st.Save(ctx, r))

	got, err := st.Get(ctx, r.SessionID)
	require.NoError(t, err)
	got.PIN = "A123456789Z"
	again, err := st.Get(ctx, r.SessionID)
	require.NoError(t, err)
	assert.Empty(t, again.PIN)

	now = now.Add(2 * time.Minute)
	_, err = st.Get(ctx, r.SessionID)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestInMemoryStore_BusyFlag(t *testing.T) {
	ctx := context.Background()
	st := NewInMemoryStore()
	sid := id.NewSessionID()

	token, err := st.AcquireBusy(ctx, sid, time.Minute)
	require.NoError(t, err)
	_, err = st.AcquireBusy(ctx, sid, time.Minute)
	assert.ErrorIs(t, err, sentinel.ErrBusy)

	require.NoError(t, st.ReleaseBusy(ctx, sid, "someone-else"))
	_, err = st.AcquireBusy(ctx, sid, time.Minute)
	assert.ErrorIs(t, err, sentinel.ErrBusy, "a foreign token must not clear the flag")

	require.NoError(t, st.ReleaseBusy(ctx, sid, token))
	_, err = st.AcquireBusy(ctx, sid, time.Minute)
	assert.NoError(t, err)
}

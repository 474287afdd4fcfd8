package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := Session{
		SessionID: "sid-1",
		UserID:    "u-1",
		UserEmail: "cliente@uc.cl",
		UserType:  "client",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cliente@uc.cl", got.UserEmail)

	require.NoError(t, store.Delete(ctx, "sid-1"))

	got, err = store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreValidation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.Error(t, store.Create(ctx, Session{SessionID: "sid"}),
		"user id is required")
	assert.Error(t, store.Create(ctx, Session{
		SessionID: "sid",
		UserID:    "u-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}), "expiry must be in the future")
}

func TestMemoryStoreExpiryOnGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, Session{
		SessionID: "sid-1",
		UserID:    "u-1",
		ExpiresAt: time.Now().Add(10 * time.Millisecond),
	}))

	time.Sleep(20 * time.Millisecond)

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGenerateIDUnique(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

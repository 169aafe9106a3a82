package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, time.Hour), mr
}

func TestStore_CreateAndResolve(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	accountID := uuid.New()

	token, err := store.Create(ctx, accountID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Account(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

func TestStore_UnknownTokenIsNoSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Account(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_EmptyTokenIsNoSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Account(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_DeleteEndsSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, token))

	_, err = store.Account(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_ExpiredTokenIsNoSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.New())
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Account(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

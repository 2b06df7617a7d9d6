package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestDraftStore(t *testing.T) (*RedisDraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDraftStore(client, time.Hour), mr
}

func TestDraftStoreRoundTrip(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()

	clientID := uuid.New()
	draft := Draft{
		ClientID:       &clientID,
		Notes:          "aguardando confirmação",
		DiscountKind:   "percent",
		DiscountAmount: "10",
		UpdatedAt:      time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Put(ctx, draft))

	loaded, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, draft.Notes, loaded.Notes)
	require.Equal(t, draft.DiscountKind, loaded.DiscountKind)
	require.NotNil(t, loaded.ClientID)
	require.Equal(t, clientID, *loaded.ClientID)
}

func TestDraftStoreEmptySlot(t *testing.T) {
	store, _ := newTestDraftStore(t)
	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, ErrNoDraft)
}

func TestDraftStoreDelete(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Draft{Notes: "x"}))
	require.NoError(t, store.Delete(ctx))

	_, err := store.Get(ctx)
	require.ErrorIs(t, err, ErrNoDraft)
}

func TestDraftStoreExpires(t *testing.T) {
	store, mr := newTestDraftStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Draft{Notes: "x"}))
	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx)
	require.ErrorIs(t, err, ErrNoDraft)
}

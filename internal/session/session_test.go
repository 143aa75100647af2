package session

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	s := New()
	s.Cart = domain.NewCart()
	s.Cart.Add(domain.CartItem{FlightID: "7", TypeTicket: "ECONOMY", Price: 100})
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 1, got.Cart.Stats().TotalQuantity)

	// mutations on the returned copy stay local until Put
	got.Cart.Add(domain.CartItem{FlightID: "7", TypeTicket: "ECONOMY", Price: 100})
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Cart.Stats().TotalQuantity)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	s := New()
	require.NoError(t, store.Put(ctx, s))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	s := New()
	require.NoError(t, store.Put(ctx, s))

	require.NoError(t, store.Delete(ctx, s.ID))

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSession_LoginLogout(t *testing.T) {
	s := New()
	assert.False(t, s.Authenticated())

	s.Login(&domain.User{ID: 3, Role: domain.UserRoleAdmin})
	assert.True(t, s.IsAdmin())

	s.Cart = domain.NewCart()
	s.Logout()
	assert.False(t, s.Authenticated())
	assert.False(t, s.IsAdmin())
	assert.NotNil(t, s.Cart)
}

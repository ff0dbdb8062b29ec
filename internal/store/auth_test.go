package store

import (
	"context"
	"testing"
	"time"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
	"github.com/ArsemaYemiru/ak-storefront/internal/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		ID:        7,
		Username:  "selam",
		Email:     "selam@example.com",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSetAuth_SetsBothFields(t *testing.T) {
	ctx := context.Background()
	sut := NewAuthStore(ctx, newMockPersist(), persist.AuthKey("s1"))

	sut.SetAuth(ctx, testUser(), "jwt-token")

	snap := sut.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, int64(7), snap.User.ID)
	assert.Equal(t, "jwt-token", snap.Token)
	assert.True(t, sut.Authenticated())
}

func TestLogout_ClearsBothFields(t *testing.T) {
	ctx := context.Background()
	sut := NewAuthStore(ctx, newMockPersist(), persist.AuthKey("s1"))
	sut.SetAuth(ctx, testUser(), "jwt-token")

	sut.Logout(ctx)

	snap := sut.Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.False(t, sut.Authenticated())
}

func TestLogout_RemovesPersistedSlot(t *testing.T) {
	ctx := context.Background()
	ps := newMockPersist()
	key := persist.AuthKey("s1")

	sut := NewAuthStore(ctx, ps, key)
	sut.SetAuth(ctx, testUser(), "jwt-token")

	sut.Logout(ctx)

	_, err := ps.Load(ctx, key)
	assert.ErrorIs(t, err, persist.ErrNotFound)
	assert.False(t, NewAuthStore(ctx, ps, key).Authenticated())
}

func TestAuthPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ps := newMockPersist()
	key := persist.AuthKey("s1")

	sut := NewAuthStore(ctx, ps, key)
	sut.SetAuth(ctx, testUser(), "jwt-token")

	restored := NewAuthStore(ctx, ps, key)
	assert.Equal(t, sut.Snapshot(), restored.Snapshot())
	assert.True(t, restored.Authenticated())
}

func TestRestoreSession_CorruptSlotSignsOut(t *testing.T) {
	ctx := context.Background()
	ps := newMockPersist()
	key := persist.AuthKey("s1")
	require.NoError(t, ps.Save(ctx, key, []byte("][")))

	sut := NewAuthStore(ctx, ps, key)
	assert.False(t, sut.Authenticated())
}

func TestRestoreSession_HalfPresentPairSignsOut(t *testing.T) {
	ctx := context.Background()
	ps := newMockPersist()
	key := persist.AuthKey("s1")

	// A token without a user (or vice versa) is stale data, not a session.
	require.NoError(t, ps.Save(ctx, key, []byte(`{"user":null,"token":"orphaned"}`)))

	snap := NewAuthStore(ctx, ps, key).Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
}

func TestAuthSnapshot_UserIsACopy(t *testing.T) {
	ctx := context.Background()
	sut := NewAuthStore(ctx, newMockPersist(), persist.AuthKey("s1"))
	sut.SetAuth(ctx, testUser(), "jwt-token")

	snap := sut.Snapshot()
	snap.User.Username = "mallory"

	assert.Equal(t, "selam", sut.Snapshot().User.Username)
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Create(ctx, Data{UserID: 7, FullName: "Иванов Иван"}, time.Hour)
	require.NoError(t, err)
	assert.Len(t, id, IDBytes*2)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.UserID)
	assert.False(t, got.IsAdmin)
	assert.Equal(t, "Иванов Иван", got.FullName)

	other, err := s.Create(ctx, Data{UserID: 7}, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	require.NoError(t, s.Destroy(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Destroy(ctx, "missing"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id, err := s.Create(ctx, Data{UserID: 1}, time.Minute)
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	_, err = s.Get(ctx, id)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec("secret", time.Hour)
	raw, err := c.Encode("abc123")
	require.NoError(t, err)

	sid, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "abc123", sid)
}

func TestCodecRejectsForgedTokens(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	forged, err := NewCodec("other", time.Hour).Encode("abc123")
	require.NoError(t, err)
	_, err = c.Decode(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = c.Decode("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewCodec("secret", -time.Minute).Encode("abc123")
	require.NoError(t, err)
	_, err = c.Decode(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": "abc123"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Decode(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateToken(id, "ad@min.com", true, "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "ad@min.com", claims.Email)
	assert.True(t, claims.Admin)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestRejectsForeignSecret(t *testing.T) {
	token, err := NewManager("one", time.Hour).GenerateToken(uuid.New(), "a@b.c", false, "")
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Nanosecond)
	token, err := m.GenerateToken(uuid.New(), "a@b.c", false, "")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingToken(t *testing.T) {
	_, err := NewManager("secret", time.Hour).ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

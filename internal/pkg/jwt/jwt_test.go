package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	s := New("secret", time.Hour)

	tok, expires, err := s.GenerateToken("u-1", "a@x.com", "sess-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "sess-1", claims.ID)
}

func TestValidateToken_Rejects(t *testing.T) {
	s := New("secret", time.Hour)
	tok, _, err := s.GenerateToken("u-1", "a@x.com", "sess-1")
	require.NoError(t, err)

	_, err = New("other", time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSession, _, err := s.GenerateToken("u-1", "a@x.com", "")
	require.NoError(t, err)
	_, err = s.ValidateToken(noSession)
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

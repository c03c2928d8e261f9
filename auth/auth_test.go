package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("s3cret", "gardener", time.Hour)
	require.NoError(t, err)

	subject, err := VerifyToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "gardener", subject)
}

func TestVerifyTokenRejects(t *testing.T) {
	good, err := CreateToken("s3cret", "gardener", time.Hour)
	require.NoError(t, err)
	expired, err := CreateToken("s3cret", "gardener", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken("other", good)
	assert.Error(t, err)

	_, err = VerifyToken("s3cret", expired)
	assert.Error(t, err)

	_, err = VerifyToken("s3cret", "not-a-token")
	assert.Error(t, err)

	_, err = VerifyToken("", good)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestCreateTokenNeedsSecret(t *testing.T) {
	_, err := CreateToken("", "gardener", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	appErr "github.com/leadflow/server/pkg/errors"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestTokenIssuerRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)

	cases := map[string]string{
		"empty":     "",
		"malformed": "not.a.token",
		"garbage":   "xxxxxxxx",
	}
	for name, token := range cases {
		_, err := issuer.Verify(token)
		require.Error(t, err, name)
		require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized), name)
	}
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), -time.Minute)
	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestTokenIssuerRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	other := NewTokenIssuer([]byte("different-secret"), time.Hour)

	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

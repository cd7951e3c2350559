// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/kol-backend/internal/config"
	"github.com/angelamos/kol-backend/internal/core"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := testTokenManager(t)
	ctx := context.Background()

	token, err := tm.CreateToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := testTokenManager(t)
	ctx := context.Background()

	for _, token := range []string{
		"",
		"not.a.token",
		"aaaa.bbbb.cccc",
	} {
		_, err := tm.VerifyToken(ctx, token)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrTokenInvalid)
	}
}

func TestTokenManager_RejectsTamperedToken(t *testing.T) {
	tm := testTokenManager(t)
	ctx := context.Background()

	token, err := tm.CreateToken("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip a character in the signature.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.VerifyToken(ctx, tampered)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	ctx := context.Background()

	issuerTM, err := NewTokenManager(config.JWTConfig{
		Secret:      "secret-one",
		TokenExpire: time.Hour,
		Issuer:      "kol-backend",
	})
	require.NoError(t, err)

	verifierTM, err := NewTokenManager(config.JWTConfig{
		Secret:      "secret-two",
		TokenExpire: time.Hour,
		Issuer:      "kol-backend",
	})
	require.NoError(t, err)

	token, err := issuerTM.CreateToken("alice")
	require.NoError(t, err)

	_, err = verifierTM.VerifyToken(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	ctx := context.Background()

	tm, err := NewTokenManager(config.JWTConfig{
		Secret:      "test-secret",
		TokenExpire: -time.Minute,
		Issuer:      "kol-backend",
	})
	require.NoError(t, err)

	token, err := tm.CreateToken("alice")
	require.NoError(t, err)

	_, err = tm.VerifyToken(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestTokenManager_RejectsWrongIssuer(t *testing.T) {
	ctx := context.Background()

	issuerTM, err := NewTokenManager(config.JWTConfig{
		Secret:      "test-secret",
		TokenExpire: time.Hour,
		Issuer:      "someone-else",
	})
	require.NoError(t, err)

	verifierTM, err := NewTokenManager(config.JWTConfig{
		Secret:      "test-secret",
		TokenExpire: time.Hour,
		Issuer:      "kol-backend",
	})
	require.NoError(t, err)

	token, err := issuerTM.CreateToken("alice")
	require.NoError(t, err)

	_, err = verifierTM.VerifyToken(ctx, token)
	require.Error(t, err)
}

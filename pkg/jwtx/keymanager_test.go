package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/hearthsocial/hearth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestEphemeralKeyManager(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   testIssuer,
		Audience: []string{"security"},
	})
	require.NoError(t, err)
	require.True(t, km.IsReady())

	// Default is three signing keys, all published in the JWKS
	require.Equal(t, 3, km.NumSigners())
	require.Len(t, km.KeySet.PublicJWKS().Keys, 3)

	// Every generated kid carries the platform prefix
	for _, jwk := range km.KeySet.PublicJWKS().Keys {
		require.True(t, strings.HasPrefix(jwk.Kid, "hearth-"))
	}

	// Tokens signed by any selected key verify through the bundled verifier
	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(
		"account-km", "session-km",
		[]string{"profiles:read"}, []string{"pwd"},
		time.Minute, testIssuer, []string{"security"},
		"kmuser", "KM User", now,
	)

	signer := km.GetSigner()
	require.NotNil(t, signer)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	parsed, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "account-km", parsed.Subject)
}

func TestEphemeralKeyManagerRequiresIssuer(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Issuer is required")
}

func TestEphemeralKeyManagerNumKeysBounds(t *testing.T) {
	t.Run("explicit count", func(t *testing.T) {
		km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
			Issuer:  testIssuer,
			NumKeys: 1,
		})
		require.NoError(t, err)
		require.Equal(t, 1, km.NumSigners())
	})

	t.Run("capped at ten", func(t *testing.T) {
		km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
			Issuer:  testIssuer,
			NumKeys: 50,
		})
		require.NoError(t, err)
		require.Equal(t, 10, km.NumSigners())
	})
}

func TestKeyManagerSingleKeyDeterministic(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  testIssuer,
		NumKeys: 1,
	})
	require.NoError(t, err)

	// With one key every pick returns the same signer
	first := km.GetSigner()
	require.NotNil(t, first)
	for i := 0; i < 5; i++ {
		require.Equal(t, first.KID(), km.GetSigner().KID())
	}
}

package cryptox_test

import (
	"encoding/base64"
	"testing"

	"github.com/hearthsocial/hearth/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	require.NoError(t, err)
	require.Len(t, token, 22, "16 bytes encode to 22 base64url chars")

	// Must decode back to the requested byte length
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, cryptox.TokenSize128)
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	_, err := cryptox.GenerateToken(0)
	require.Error(t, err)

	_, err = cryptox.GenerateToken(-5)
	require.Error(t, err)
}

func TestGenerateToken_Uniqueness(t *testing.T) {
	const count = 100
	seen := make(map[string]bool, count)

	for range count {
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)
		require.NotContains(t, seen, token, "duplicate token generated")
		seen[token] = true
	}
}

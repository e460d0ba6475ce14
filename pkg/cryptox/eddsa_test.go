package cryptox_test

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hearthsocial/hearth/pkg/cryptox"
)

func TestGenerateEd25519Key(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	block, rest := pem.Decode(pemBytes)
	require.NotNil(t, block, "output must be a single PEM block")
	require.Empty(t, rest)
	require.Equal(t, "PRIVATE KEY", block.Type, "PKCS8 encoding expected")

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)

	key, ok := parsed.(ed25519.PrivateKey)
	require.True(t, ok, "key must be Ed25519")
	require.Len(t, key, ed25519.PrivateKeySize)

	// Each call produces independent key material.
	again, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	require.NotEqual(t, pemBytes, again)
}

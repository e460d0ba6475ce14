package cryptox_test

import (
	"testing"

	"github.com/hearthsocial/hearth/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateBackupCode(t *testing.T) {
	for range 20 {
		code, err := cryptox.GenerateBackupCode()
		require.NoError(t, err)
		require.Len(t, code, cryptox.BackupCodeLength)

		for _, ch := range code {
			valid := (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
			require.True(t, valid, "code %q contains %q outside [A-Z0-9]", code, ch)
		}
	}
}

func TestGenerateBackupCode_Uniqueness(t *testing.T) {
	const count = 200
	seen := make(map[string]bool, count)

	for range count {
		code, err := cryptox.GenerateBackupCode()
		require.NoError(t, err)
		require.NotContains(t, seen, code, "duplicate backup code generated")
		seen[code] = true
	}
}

func TestFingerprintCode(t *testing.T) {
	fp1 := cryptox.FingerprintCode("A1B2C3D4")
	fp2 := cryptox.FingerprintCode("A1B2C3D4")
	fp3 := cryptox.FingerprintCode("A1B2C3D5")

	require.Equal(t, fp1, fp2, "fingerprints must be deterministic")
	require.NotEqual(t, fp1, fp3)
	require.Len(t, fp1, 43, "base64url of sha256 without padding")

	// Fingerprints must not leak the code itself.
	require.NotContains(t, fp1, "A1B2C3D4")
}

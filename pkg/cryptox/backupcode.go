package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
)

// BackupCodeLength is the character count of a generated recovery code.
const BackupCodeLength = 8

// backupCodeCharset avoids lowercase so codes survive being read aloud or
// retyped from a printout.
const backupCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBackupCode returns a random 8-character recovery code drawn
// uniformly from [A-Z0-9].
func GenerateBackupCode() (string, error) {
	code := make([]byte, BackupCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(backupCodeCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate backup code: %w", err)
		}
		code[i] = backupCodeCharset[n.Int64()]
	}
	return string(code), nil
}

// FingerprintCode returns the deterministic SHA-256 fingerprint of a code as
// base64url. Only fingerprints are stored; the plaintext code exists exactly
// once, in the response that issued it.
func FingerprintCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

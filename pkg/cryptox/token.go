package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Random token lengths in bytes, before base64url encoding.
const (
	TokenSize128 = 16 // 128 bits, 22 encoded characters
	TokenSize256 = 32 // 256 bits, 43 encoded characters
)

// GenerateToken draws size bytes from crypto/rand and returns them as an
// unpadded base64url string. Key IDs and other opaque identifiers that
// must be unguessable come from here.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", size)
	}

	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

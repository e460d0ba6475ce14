package jwtx

import (
	"fmt"
	"math/rand/v2"

	"github.com/hearthsocial/hearth/pkg/cryptox"
)

// KeyManager bundles Ed25519 signing keys with the KeySet and Verifier built
// from them. It exists for instances that mint their own tokens: local
// development and test rigs. In production the identity service owns the
// signing keys and this service only mirrors its JWKS.
//
// Multiple signing keys are held at once; signing operations pick one at
// random to distribute load and keep key usage unpredictable. The key set is
// fixed at construction.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signers []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Issuer is both minted into and required of every token
	Issuer string

	// Audience values the verifier accepts; empty skips the check
	Audience []string

	// NumKeys is how many signing keys to generate, clamped to 1..10.
	// Zero means 3.
	NumKeys int
}

// NewEphemeralKeyManager creates a KeyManager over freshly generated
// in-memory Ed25519 keys. Nothing touches disk, so every restart
// invalidates all previously minted tokens. That is the right property for
// local development and test rigs; production never mints here.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 3
	}
	if numKeys > 10 {
		numKeys = 10
	}

	keyset := NewKeySet()
	signers := make([]Signer, 0, numKeys)

	for i := range numKeys {
		keyID, err := generateRandomKeyID()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key ID: %w", err)
		}

		pemBytes, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key %d: %w", i+1, err)
		}

		signer, err := NewSignerEdDSA(keyID, pemBytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to create signer %d: %w", i+1, err)
		}

		signers = append(signers, signer)

		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d to keyset: %w", i+1, err)
		}
	}

	return &KeyManager{
		Verifier: NewCommonEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// IsReady reports whether verification keys are loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns a randomly selected signer from the available signing
// keys. If only one key exists, it returns that key consistently.
func (km *KeyManager) GetSigner() Signer {
	if len(km.signers) == 0 {
		return nil
	}

	if len(km.signers) == 1 {
		return km.signers[0]
	}

	i := rand.IntN(len(km.signers))
	return km.signers[i]
}

// NumSigners reports how many signing keys GetSigner draws from.
func (km *KeyManager) NumSigners() int {
	return len(km.signers)
}

// generateRandomKeyID mints a "hearth-" prefixed kid from 128 bits of
// secure randomness.
func generateRandomKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("failed to generate random key ID: %w", err)
	}
	return fmt.Sprintf("hearth-%s", token), nil
}

package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the platform default for access-token lifetime.
const DefaultAccessTokenTTL = 15 * time.Minute

// Claims is the access-token claim set shared by every Hearth service.
// Fields are only ever added, never renamed or removed, so a service built
// against an older shape still parses tokens minted by a newer identity
// deployment.
type Claims struct {
	jwt.RegisteredClaims

	// SID identifies the login session the token was minted under.
	SID string `json:"sid,omitempty"`

	// Scopes carries permission scopes such as "blocks:write" or
	// "profiles:read". Resource services enforce these per route.
	Scopes []string `json:"scopes,omitempty"`

	// AMR lists the authentication methods behind the session:
	// "pwd" password, "otp" a one-time code, "mfa" both. Services that
	// gate sensitive operations can require more than "pwd" here.
	AMR []string `json:"amr,omitempty"`

	// Username for the authenticated account.
	Username string `json:"username,omitempty"`

	// DisplayName is the account's public display name.
	DisplayName string `json:"display_name,omitempty"`
}

// NewAccessClaims builds a claim set with iat/nbf pinned to now and exp at
// now+ttl. Every token gets a fresh random jti.
func NewAccessClaims(
	subject, sid string,
	scopes, amr []string,
	ttl time.Duration,
	issuer string,
	audience []string,
	username, displayName string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:         sid,
		Scopes:      scopes,
		AMR:         amr,
		Username:    username,
		DisplayName: displayName,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
// 160 bits of randomness, no coordination needed between minters.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the iss claim against the expected issuer.
// An empty expectation enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience passes when the token names at least one of the expected
// audiences. An empty expectation enforces nothing.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf against the current time with no grace
// period.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway checks exp and nbf, tolerating the given amount
// of clock skew in both directions.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}

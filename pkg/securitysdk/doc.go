/*
Package securitysdk provides a client SDK for the Hearth security service.

# Overview

The security service owns the platform's access-control decisions: block
relationships, per-account privacy, follow requests, content and profile
visibility, and TOTP-based two-factor authentication. This package gives
both user-facing apps and sibling backend services a typed client for it.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: Provides unauthenticated operations (health, JWKS) and creates sessions
  - Session: Provides authenticated operations on behalf of one access token

Create an SDKClient to interact with public endpoints:

	client := securitysdk.NewSDKClient("https://security.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Fetch verification keys
	jwks, err := client.GetJWKS(ctx)

The security service does not mint tokens; authenticate against the
identity service first and hand the resulting access token to
SessionFromToken along with its granted scope string:

	session := client.SessionFromToken(accessToken, "blocks:write follows:write privacy:read")

	// Block an account (requires blocks:write scope)
	record, err := session.Block(ctx, targetID, "spam replies")

	// Follow, or request to follow a private account (requires follows:write scope)
	result, err := session.Follow(ctx, targetID)
	if result.Result == securitysdk.FollowResultRequested {
		// waiting on the target's approval
	}

When the token expires, refresh it with the identity service's SDK and
create a new Session. Sessions hold no other state.

# Access Checks

Backend services consult the guard endpoints before serving cross-account
reads and writes. Denials are normal decisions, not HTTP errors:

	decision, err := session.CanViewContent(ctx, securitysdk.ContentRef{
		ID:      postID,
		OwnerID: authorID,
		Scope:   &securitysdk.ContentScope{Level: "followers"},
	})
	if err != nil {
		// transport or server fault
	}
	if !decision.Allowed {
		// decision.Code is one of the stable machine codes, e.g. CONTENT_HIDDEN
	}

Feed services filter whole pages in one round trip:

	visible, err := session.FilterContent(ctx, candidates)

# Two-Factor Authentication

Enrollment is a two-step dance so a lost QR code can't lock anyone out:

	setup, err := session.TwoFactorSetup(ctx)
	// render setup.ProvisioningURI as a QR code, then:
	codes, err := session.TwoFactorEnable(ctx, setup.Secret, userEnteredCode)
	// codes.BackupCodes is shown exactly once

Verification treats a wrong code as data, not an error:

	result, err := session.TwoFactorVerify(ctx, userEnteredCode)
	if err == nil && !result.Valid {
		// wrong code; the account's budget of attempts is rate limited server-side
	}

# Error Handling

Failures carry stable machine codes so callers can branch without parsing
prose:

	err := session.Unblock(ctx, targetID)
	if securitysdk.IsCode(err, securitysdk.ErrorCodeNotBlocked) {
		// nothing to undo
	}

	var rl *securitysdk.RateLimitedError
	if errors.As(err, &rl) {
		// back off for rl.RetryAfter seconds
	}

# Scope Requirements

Each authenticated operation requires specific scopes, enforced both
client-side (before making requests) and server-side:

  - blocks:read / blocks:write: Inspect and manage block relationships
  - privacy:read / privacy:write: Inspect and update privacy settings
  - follows:read / follows:write: Follow accounts and manage follow requests
  - access:check: Evaluate guard chains (typically held by backend services)
  - twofactor:manage: All two-factor operations

Set SDKClient.CheckScopes to false to skip the client-side check and rely
on server enforcement alone (useful for testing the server's behavior).
*/
package securitysdk

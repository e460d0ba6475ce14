package securitysdk

import (
	"context"
	"net/http"
)

// TwoFactorSetup starts TOTP enrollment for the caller. The response holds
// the secret and the otpauth:// URI to render as a QR code. Nothing is
// persisted until TwoFactorEnable succeeds, so abandoning setup is free.
// Requires: twofactor:manage scope
func (s *Session) TwoFactorSetup(ctx context.Context) (*TwoFactorSetupResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/2fa/setup", nil, "twofactor:manage")
	if err != nil {
		return nil, err
	}

	var setup TwoFactorSetupResponse
	if err := decodeJSON(resp, &setup, http.StatusOK); err != nil {
		return nil, err
	}

	return &setup, nil
}

// TwoFactorEnable completes enrollment by submitting the secret from setup
// together with a code generated by the authenticator app. On success it
// returns the ten single-use backup codes; this is the only time they are
// visible in plaintext, so show them to the user immediately.
// Requires: twofactor:manage scope
func (s *Session) TwoFactorEnable(ctx context.Context, secret, code string) (*BackupCodesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/2fa/enable",
		TwoFactorEnableRequest{Secret: secret, Code: code},
		"twofactor:manage",
	)
	if err != nil {
		return nil, err
	}

	var codes BackupCodesResponse
	if err := decodeJSON(resp, &codes, http.StatusOK); err != nil {
		return nil, err
	}

	return &codes, nil
}

// TwoFactorVerify checks a TOTP code against the caller's enrolled secret.
// A wrong code yields Valid false, not an error; only transport faults,
// missing enrollment or integrity failures surface as errors.
// Requires: twofactor:manage scope
func (s *Session) TwoFactorVerify(ctx context.Context, code string) (*TwoFactorVerifyResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/2fa/verify",
		TwoFactorVerifyRequest{Code: code},
		"twofactor:manage",
	)
	if err != nil {
		return nil, err
	}

	var result TwoFactorVerifyResponse
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}

// VerifyBackupCode spends one of the caller's single-use backup codes.
// Codes are case-insensitive and a consumed code never validates again.
// Requires: twofactor:manage scope
func (s *Session) VerifyBackupCode(ctx context.Context, code string) (*TwoFactorVerifyResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/2fa/backup-codes/verify",
		BackupCodeVerifyRequest{Code: code},
		"twofactor:manage",
	)
	if err != nil {
		return nil, err
	}

	var result TwoFactorVerifyResponse
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}

// RegenerateBackupCodes replaces the caller's backup codes with ten fresh
// ones. Requires a valid TOTP code; every previous code stops working.
// Requires: twofactor:manage scope
func (s *Session) RegenerateBackupCodes(ctx context.Context, totpCode string) (*BackupCodesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/2fa/backup-codes",
		TwoFactorRegenerateRequest{Code: totpCode},
		"twofactor:manage",
	)
	if err != nil {
		return nil, err
	}

	var codes BackupCodesResponse
	if err := decodeJSON(resp, &codes, http.StatusOK); err != nil {
		return nil, err
	}

	return &codes, nil
}

// TwoFactorDisable turns off two-factor authentication for the caller.
// Both the account password and a valid TOTP code are required; a failure
// of either comes back as the same INVALID_CREDENTIALS error.
// Requires: twofactor:manage scope
func (s *Session) TwoFactorDisable(ctx context.Context, password, code string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/2fa",
		TwoFactorDisableRequest{Password: password, Code: code},
		"twofactor:manage",
	)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// TwoFactorStatus returns the caller's current two-factor state, including
// how many backup codes remain unspent.
// Requires: twofactor:manage scope
func (s *Session) TwoFactorStatus(ctx context.Context) (*TwoFactorStatusResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/2fa/status", nil, "twofactor:manage")
	if err != nil {
		return nil, err
	}

	var status TwoFactorStatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return nil, err
	}

	return &status, nil
}

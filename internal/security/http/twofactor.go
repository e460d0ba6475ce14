package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hearthsocial/hearth/internal/security/service"
	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/securitysdk"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// TwoFactorHandler handles all two-factor authentication endpoints.
type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
}

// HandleSetup handles POST /v1/2fa/setup
//
//	@Summary		Begin two-factor enrollment
//	@Description	Generates a fresh TOTP secret and provisioning URI for the caller. Nothing is persisted until enable proves the authenticator holds the secret, so abandoning setup leaves the account untouched.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	securitysdk.TwoFactorSetupResponse	"Secret and otpauth:// URI"
//	@Failure		400	{object}	securitysdk.ErrorResponse			"Two-factor already enabled"
//	@Failure		401	{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		404	{object}	securitysdk.ErrorResponse			"Account not found"
//	@Failure		500	{object}	securitysdk.ErrorResponse			"Internal server error"
//	@Router			/v1/2fa/setup [post].
func (h *TwoFactorHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.TwoFactorService.BeginSetup(ctx, accountID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTwoFactorEnabled):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeTwoFactorEnabled,
				"two-factor auth is already enabled; disable it before re-enrolling").WriteError(w)
		case errors.Is(err, service.ErrAccountNotFound):
			securitysdk.NewAPIError(http.StatusNotFound,
				securitysdk.ErrorCodeAccountNotFound, "account not found").WriteError(w)
		default:
			log.Error("failed to begin two-factor setup", "account_id", accountID, "err", err)
			securitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.TwoFactorSetupResponse{
		Secret:          enrollment.Secret,
		ProvisioningURI: enrollment.ProvisioningURI,
		Issuer:          enrollment.Issuer,
		Account:         enrollment.Account,
	})
}

// HandleEnable handles POST /v1/2fa/enable
//
//	@Summary		Complete two-factor enrollment
//	@Description	Activates two-factor auth by echoing the setup secret with a current code from the authenticator. Returns ten single-use backup codes; this response is the only time they are visible in plaintext.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.TwoFactorEnableRequest	true	"Setup secret and current code"
//	@Success		200		{object}	securitysdk.BackupCodesResponse		"Backup codes (shown once)"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Invalid code or already enabled"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		429		{object}	securitysdk.ErrorResponse			"Attempt budget exhausted"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"Internal server error"
//	@Router			/v1/2fa/enable [post].
func (h *TwoFactorHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.TwoFactorEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Secret == "" || req.Code == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "secret and code are required").WriteError(w)
		return
	}

	backupCodes, err := h.TwoFactorService.CompleteSetup(ctx, accountID, req.Secret, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeInvalidTwoFactor, "invalid two-factor code").WriteError(w)
		case errors.Is(err, service.ErrTwoFactorEnabled):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeTwoFactorEnabled,
				"two-factor auth is already enabled for this account").WriteError(w)
		default:
			log.Error("failed to enable two-factor auth", "account_id", accountID, "err", err)
			securitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.BackupCodesResponse{
		BackupCodes: backupCodes,
	})
}

// HandleVerify handles POST /v1/2fa/verify
//
//	@Summary		Verify a TOTP code
//	@Description	Checks a code against the caller's enrolled secret. A wrong code is valid=false with HTTP 200, not an error; the hard attempt budget lives in the rate limiter, not the response shape.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.TwoFactorVerifyRequest	true	"Code to verify"
//	@Success		200		{object}	securitysdk.TwoFactorVerifyResponse	"Whether the code was accepted"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Two-factor not enabled"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		429		{object}	securitysdk.ErrorResponse			"Attempt budget exhausted"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"Integrity failure or internal error"
//	@Router			/v1/2fa/verify [post].
func (h *TwoFactorHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.TwoFactorVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "code is required").WriteError(w)
		return
	}

	valid, err := h.TwoFactorService.Verify(ctx, accountID, req.Code)
	if err != nil {
		h.writeVerifyError(w, log, accountID, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.TwoFactorVerifyResponse{Valid: valid})
}

// HandleVerifyBackupCode handles POST /v1/2fa/backup-codes/verify
//
//	@Summary		Spend a backup code
//	@Description	Verifies and consumes a single-use backup code. A code that was already spent, or never existed, is valid=false; the response never distinguishes the two.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.BackupCodeVerifyRequest	true	"Backup code"
//	@Success		200		{object}	securitysdk.TwoFactorVerifyResponse	"Whether the code was accepted and consumed"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Two-factor not enabled"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		429		{object}	securitysdk.ErrorResponse			"Attempt budget exhausted"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"Internal server error"
//	@Router			/v1/2fa/backup-codes/verify [post].
func (h *TwoFactorHandler) HandleVerifyBackupCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.BackupCodeVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "code is required").WriteError(w)
		return
	}

	valid, err := h.TwoFactorService.VerifyBackupCode(ctx, accountID, req.Code)
	if err != nil {
		h.writeVerifyError(w, log, accountID, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.TwoFactorVerifyResponse{Valid: valid})
}

// HandleRegenerateBackupCodes handles POST /v1/2fa/backup-codes
//
//	@Summary		Regenerate backup codes
//	@Description	Replaces the full backup code set after re-verifying a current TOTP code. Every old code stops working immediately, spent or not.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.TwoFactorRegenerateRequest	true	"Current TOTP code"
//	@Success		200		{object}	securitysdk.BackupCodesResponse			"New backup codes (shown once)"
//	@Failure		400		{object}	securitysdk.ErrorResponse				"Invalid code or two-factor not enabled"
//	@Failure		401		{object}	securitysdk.ErrorResponse				"Invalid or missing access token"
//	@Failure		429		{object}	securitysdk.ErrorResponse				"Attempt budget exhausted"
//	@Failure		500		{object}	securitysdk.ErrorResponse				"Internal server error"
//	@Router			/v1/2fa/backup-codes [post].
func (h *TwoFactorHandler) HandleRegenerateBackupCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.TwoFactorRegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "code is required").WriteError(w)
		return
	}

	backupCodes, err := h.TwoFactorService.RegenerateBackupCodes(ctx, accountID, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTOTPCode) {
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeInvalidTwoFactor, "invalid two-factor code").WriteError(w)
			return
		}
		h.writeVerifyError(w, log, accountID, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.BackupCodesResponse{
		BackupCodes: backupCodes,
	})
}

// HandleDisable handles DELETE /v1/2fa
//
//	@Summary		Disable two-factor authentication
//	@Description	Tears down the enrollment and destroys all backup codes. Demands the account password AND a current TOTP code, so neither a stolen session nor a stolen phone suffices alone. The error never says which proof failed.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	securitysdk.TwoFactorDisableRequest	true	"Password and current code"
//	@Success		204		"Two-factor disabled"
//	@Failure		400		{object}	securitysdk.ErrorResponse	"Invalid credentials or two-factor not enabled"
//	@Failure		401		{object}	securitysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		429		{object}	securitysdk.ErrorResponse	"Attempt budget exhausted"
//	@Failure		500		{object}	securitysdk.ErrorResponse	"Internal server error"
//	@Router			/v1/2fa [delete].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.TwoFactorDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Password == "" || req.Code == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "password and code are required").WriteError(w)
		return
	}

	if err := h.TwoFactorService.Disable(ctx, accountID, req.Password, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			// Deliberately ambiguous: do not reveal whether the password or
			// the code was wrong.
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeInvalidCredentials, "password or code is incorrect").WriteError(w)
		case errors.Is(err, service.ErrAccountNotFound):
			securitysdk.NewAPIError(http.StatusNotFound,
				securitysdk.ErrorCodeAccountNotFound, "account not found").WriteError(w)
		default:
			h.writeVerifyError(w, log, accountID, err)
		}
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleStatus handles GET /v1/2fa/status
//
//	@Summary		Two-factor status
//	@Description	Reports whether two-factor auth is enabled for the caller and how many backup codes remain unspent.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	securitysdk.TwoFactorStatusResponse	"Current enrollment state"
//	@Failure		401	{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		500	{object}	securitysdk.ErrorResponse			"Internal server error"
//	@Router			/v1/2fa/status [get].
func (h *TwoFactorHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	status, err := h.TwoFactorService.Status(ctx, accountID)
	if err != nil {
		log.Error("failed to load two-factor status", "account_id", accountID, "err", err)
		securitysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.TwoFactorStatusResponse{
		Enabled:              status.Enabled,
		EnabledAt:            status.EnabledAt,
		LastUsedAt:           status.LastUsedAt,
		BackupCodesRemaining: status.UnusedBackupCodeCount,
	})
}

// writeVerifyError maps the failures shared by every code-verifying
// endpoint. ErrIntegrity means the stored secret failed authenticated
// decryption; it is already logged and alarmed at the service layer.
func (h *TwoFactorHandler) writeVerifyError(w http.ResponseWriter, log *slog.Logger, accountID string, err error) {
	switch {
	case errors.Is(err, service.ErrTwoFactorNotEnabled):
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeTwoFactorNotEnabled,
			"two-factor auth is not enabled for this account").WriteError(w)
	case errors.Is(err, service.ErrIntegrity):
		securitysdk.ErrIntegrity.WriteError(w)
	default:
		log.Error("two-factor operation failed", "account_id", accountID, "err", err)
		securitysdk.ErrServerError.WriteError(w)
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/service"
	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/securitysdk"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// PrivacyHandler handles account privacy settings endpoints.
type PrivacyHandler struct {
	VisibilityService *service.VisibilityService
}

// HandleGet handles GET /v1/privacy
//
//	@Summary		Get privacy settings
//	@Description	Returns the caller's current privacy configuration.
//	@Tags			Privacy
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	securitysdk.PrivacySettingsResponse	"Current settings"
//	@Failure		401	{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		404	{object}	securitysdk.ErrorResponse			"Account not found"
//	@Failure		500	{object}	securitysdk.ErrorResponse			"Internal server error"
//	@Router			/v1/privacy [get].
func (h *PrivacyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	settings, err := h.VisibilityService.GetPrivacy(ctx, accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			securitysdk.NewAPIError(http.StatusNotFound,
				securitysdk.ErrorCodeAccountNotFound, "account not found").WriteError(w)
			return
		}
		log.Error("failed to load privacy settings", "account_id", accountID, "err", err)
		securitysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, privacyResponse(settings))
}

// HandleUpdate handles PATCH /v1/privacy
//
//	@Summary		Update privacy settings
//	@Description	Applies a partial update to the caller's privacy settings. Omitted fields keep their stored value. Flipping is_private off does not auto-approve pending follow requests.
//	@Tags			Privacy
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.PrivacyUpdateRequest	true	"Fields to change"
//	@Success		200		{object}	securitysdk.PrivacySettingsResponse	"Settings after the update"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Invalid dm_policy value"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		404		{object}	securitysdk.ErrorResponse			"Account not found"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"Internal server error"
//	@Router			/v1/privacy [patch].
func (h *PrivacyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.PrivacyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	patch := domain.PrivacyPatch{
		IsPrivate:           req.IsPrivate,
		AllowFollowRequests: req.AllowFollowRequests,
		ShowOnlineStatus:    req.ShowOnlineStatus,
	}
	if req.DMPolicy != nil {
		policy := domain.DMPolicy(*req.DMPolicy)
		patch.AllowDirectMessages = &policy
	}

	settings, err := h.VisibilityService.UpdatePrivacy(ctx, accountID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrivacySetting):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeInvalidPrivacySetting,
				"dm_policy must be one of: everyone, followers, none").WriteError(w)
		case errors.Is(err, service.ErrAccountNotFound):
			securitysdk.NewAPIError(http.StatusNotFound,
				securitysdk.ErrorCodeAccountNotFound, "account not found").WriteError(w)
		default:
			log.Error("failed to update privacy settings", "account_id", accountID, "err", err)
			securitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, privacyResponse(settings))
}

func privacyResponse(s domain.PrivacySettings) securitysdk.PrivacySettingsResponse {
	return securitysdk.PrivacySettingsResponse{
		IsPrivate:           s.IsPrivate,
		AllowFollowRequests: s.AllowFollowRequests,
		ShowOnlineStatus:    s.ShowOnlineStatus,
		DMPolicy:            string(s.AllowDirectMessages),
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hearthsocial/hearth/internal/security/service"
	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/securitysdk"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// BlocksHandler handles all block list endpoints.
type BlocksHandler struct {
	BlockService *service.BlockService
}

// HandleCreate handles POST /v1/blocks
//
//	@Summary		Block an account
//	@Description	Creates a block against the target account. Storage is directional but enforcement is symmetric: neither side can interact with the other afterwards.
//	@Tags			Blocks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.BlockRequest			true	"Target account and optional private reason"
//	@Success		201		{object}	securitysdk.BlockRecordResponse		"The created block record"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Self block or already blocked"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		404		{object}	securitysdk.ErrorResponse			"Target account not found"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"Internal server error"
//	@Router			/v1/blocks [post].
func (h *BlocksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.TargetID == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "target_id is required").WriteError(w)
		return
	}

	rec, err := h.BlockService.Block(ctx, accountID, req.TargetID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfAction):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeSelfAction, "you cannot block yourself").WriteError(w)
		case errors.Is(err, service.ErrAlreadyBlocked):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeAlreadyBlocked, "this account is already blocked").WriteError(w)
		case errors.Is(err, service.ErrAccountNotFound):
			securitysdk.NewAPIError(http.StatusNotFound,
				securitysdk.ErrorCodeAccountNotFound, "target account not found").WriteError(w)
		default:
			log.Error("failed to create block", "account_id", accountID, "err", err)
			securitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, securitysdk.BlockRecordResponse{
		ID:        rec.ID,
		BlockerID: rec.BlockerID,
		BlockedID: rec.BlockedID,
		Reason:    rec.Reason,
		CreatedAt: rec.CreatedAt,
	})
}

// HandleDelete handles DELETE /v1/blocks/{id}
//
//	@Summary		Unblock an account
//	@Description	Removes the caller's block against the account in the path. Only the caller's own block is affected; a block in the other direction stays.
//	@Tags			Blocks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"Account ID to unblock"
//	@Success		204	"Block removed"
//	@Failure		400	{object}	securitysdk.ErrorResponse	"Account is not blocked"
//	@Failure		401	{object}	securitysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	securitysdk.ErrorResponse	"Internal server error"
//	@Router			/v1/blocks/{id} [delete].
func (h *BlocksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	targetID := r.PathValue("id")
	if targetID == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "account id is required").WriteError(w)
		return
	}

	if err := h.BlockService.Unblock(ctx, accountID, targetID); err != nil {
		if errors.Is(err, service.ErrNotBlocked) {
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeNotBlocked, "this account is not blocked").WriteError(w)
			return
		}
		log.Error("failed to remove block", "account_id", accountID, "err", err)
		securitysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleList handles GET /v1/blocks
//
//	@Summary		List blocked accounts
//	@Description	Returns the caller's block list newest-first, with the blocked accounts' display data joined in.
//	@Tags			Blocks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page		query		int	false	"Page number (1-based)"
//	@Param			page_size	query		int	false	"Page size (max 100)"
//	@Success		200			{object}	securitysdk.BlockListResponse	"One page of the block list"
//	@Failure		401			{object}	securitysdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500			{object}	securitysdk.ErrorResponse		"Internal server error"
//	@Router			/v1/blocks [get].
func (h *BlocksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	page, pageSize := parsePagination(r)

	result, err := h.BlockService.ListBlocked(ctx, accountID, page, pageSize)
	if err != nil {
		log.Error("failed to list blocks", "account_id", accountID, "err", err)
		securitysdk.ErrServerError.WriteError(w)
		return
	}

	entries := make([]securitysdk.BlockedAccountEntry, 0, len(result.Items))
	for _, item := range result.Items {
		entries = append(entries, securitysdk.BlockedAccountEntry{
			AccountID:   item.AccountID,
			Username:    item.Username,
			DisplayName: item.DisplayName,
			AvatarURL:   item.AvatarURL,
			Reason:      item.Reason,
			BlockedAt:   item.BlockedAt,
		})
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.BlockListResponse{
		Blocks:   entries,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

// HandleStatus handles GET /v1/blocks/{id}/status
//
//	@Summary		Block status against an account
//	@Description	Describes the block relationship between the caller and the account in the path, from the caller's perspective.
//	@Tags			Blocks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string							true	"Account ID to check against"
//	@Success		200	{object}	securitysdk.BlockStatusResponse	"Block relationship"
//	@Failure		401	{object}	securitysdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500	{object}	securitysdk.ErrorResponse		"Internal server error"
//	@Router			/v1/blocks/{id}/status [get].
func (h *BlocksHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	targetID := r.PathValue("id")
	if targetID == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "account id is required").WriteError(w)
		return
	}

	status, err := h.BlockService.Status(ctx, accountID, targetID)
	if err != nil {
		log.Error("failed to resolve block status", "account_id", accountID, "err", err)
		securitysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.BlockStatusResponse{
		Blocked:     status.IsBlocked,
		BlockedBy:   status.IsBlockedBy,
		CanInteract: status.CanInteract,
	})
}

// parsePagination reads page/page_size query parameters. Values out of range
// are normalized by the service layer, so parse failures just pass zero.
func parsePagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	return page, pageSize
}

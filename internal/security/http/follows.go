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

// FollowsHandler handles follow edges and the follow request inbox.
type FollowsHandler struct {
	FollowService *service.FollowService
}

// HandleCreate handles POST /v1/follows
//
//	@Summary		Follow an account
//	@Description	Follows the target directly when its profile is public, or files a pending follow request when it is private. The result field tells the caller which happened.
//	@Tags			Follows
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.FollowCreateRequest	true	"Account to follow"
//	@Success		200		{object}	securitysdk.FollowResponse		"direct_follow or follow_request"
//	@Failure		400		{object}	securitysdk.ErrorResponse		"Self follow, already following, duplicate or disabled requests"
//	@Failure		401		{object}	securitysdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	securitysdk.ErrorResponse		"A block exists between the accounts"
//	@Failure		404		{object}	securitysdk.ErrorResponse		"Target account not found"
//	@Failure		500		{object}	securitysdk.ErrorResponse		"Internal server error"
//	@Router			/v1/follows [post].
func (h *FollowsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.FollowCreateRequest
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

	result, err := h.FollowService.SendFollowRequest(ctx, accountID, req.TargetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfAction):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeSelfAction, "you cannot follow yourself").WriteError(w)
		case errors.Is(err, service.ErrAccountNotFound):
			securitysdk.NewAPIError(http.StatusNotFound,
				securitysdk.ErrorCodeAccountNotFound, "target account not found").WriteError(w)
		case errors.Is(err, service.ErrBlocked):
			securitysdk.NewAPIError(http.StatusForbidden,
				securitysdk.ErrorCodeBlocked, "you cannot follow this account").WriteError(w)
		case errors.Is(err, service.ErrAlreadyFollowing):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeAlreadyFollowing, "you already follow this account").WriteError(w)
		case errors.Is(err, service.ErrDuplicateRequest):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeDuplicateRequest, "a follow request is already pending").WriteError(w)
		case errors.Is(err, service.ErrRequestsDisabled):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeRequestsDisabled, "this account does not accept follow requests").WriteError(w)
		default:
			log.Error("failed to create follow", "account_id", accountID, "err", err)
			securitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.FollowResponse{
		Result: string(result),
	})
}

// HandleDelete handles DELETE /v1/follows/{id}
//
//	@Summary		Unfollow an account
//	@Description	Removes the caller's follow edge to the account in the path.
//	@Tags			Follows
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"Account ID to unfollow"
//	@Success		204	"Follow removed"
//	@Failure		400	{object}	securitysdk.ErrorResponse	"Not following this account"
//	@Failure		401	{object}	securitysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	securitysdk.ErrorResponse	"Internal server error"
//	@Router			/v1/follows/{id} [delete].
func (h *FollowsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.FollowService.Unfollow(ctx, accountID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfAction):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeSelfAction, "you cannot unfollow yourself").WriteError(w)
		case errors.Is(err, service.ErrNotFollowing):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeNotFollowing, "you do not follow this account").WriteError(w)
		default:
			log.Error("failed to remove follow", "account_id", accountID, "err", err)
			securitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleListRequests handles GET /v1/follow-requests
//
//	@Summary		List follow requests
//	@Description	Returns follow requests addressed to the caller, newest first. The status filter defaults to all; pass pending, approved or rejected to narrow it.
//	@Tags			Follows
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status		query		string	false	"Filter by status (pending, approved, rejected)"
//	@Param			page		query		int		false	"Page number (1-based)"
//	@Param			page_size	query		int		false	"Page size (max 100)"
//	@Success		200			{object}	securitysdk.FollowRequestListResponse	"One page of follow requests"
//	@Failure		400			{object}	securitysdk.ErrorResponse				"Unknown status filter"
//	@Failure		401			{object}	securitysdk.ErrorResponse				"Invalid or missing access token"
//	@Failure		500			{object}	securitysdk.ErrorResponse				"Internal server error"
//	@Router			/v1/follow-requests [get].
func (h *FollowsHandler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	status := domain.FollowRequestStatus(r.URL.Query().Get("status"))
	page, pageSize := parsePagination(r)

	result, err := h.FollowService.ListFollowRequests(ctx, accountID, status, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusFilter) {
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeInvalidRequest,
				"status must be one of: pending, approved, rejected").WriteError(w)
			return
		}
		log.Error("failed to list follow requests", "account_id", accountID, "err", err)
		securitysdk.ErrServerError.WriteError(w)
		return
	}

	entries := make([]securitysdk.FollowRequestEntry, 0, len(result.Items))
	for _, item := range result.Items {
		entries = append(entries, securitysdk.FollowRequestEntry{
			RequestID:   item.RequestID,
			RequesterID: item.RequesterID,
			Username:    item.Username,
			DisplayName: item.DisplayName,
			AvatarURL:   item.AvatarURL,
			Status:      string(item.Status),
			RequestedAt: item.RequestedAt,
		})
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.FollowRequestListResponse{
		Requests: entries,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

// HandleResolve handles POST /v1/follow-requests/{id}
//
//	@Summary		Approve or reject a follow request
//	@Description	Resolves the pending request from the requester in the path. Approval creates the follow edge; rejection leaves no edge. Either way the request leaves the pending queue.
//	@Tags			Follows
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string								true	"Requester account ID"
//	@Param			request	body	securitysdk.FollowResolveRequest	true	"approve or reject"
//	@Success		204		"Request resolved"
//	@Failure		400		{object}	securitysdk.ErrorResponse	"Unknown action"
//	@Failure		401		{object}	securitysdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404		{object}	securitysdk.ErrorResponse	"No pending request from this account"
//	@Failure		500		{object}	securitysdk.ErrorResponse	"Internal server error"
//	@Router			/v1/follow-requests/{id} [post].
func (h *FollowsHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	requesterID := r.PathValue("id")
	if requesterID == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "requester id is required").WriteError(w)
		return
	}

	var req securitysdk.FollowResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	action := domain.FollowRequestAction(req.Action)
	if err := h.FollowService.ResolveFollowRequest(ctx, accountID, requesterID, action); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResolveAction):
			securitysdk.NewAPIError(http.StatusBadRequest,
				securitysdk.ErrorCodeInvalidRequest,
				"action must be approve or reject").WriteError(w)
		case errors.Is(err, service.ErrRequestNotFound):
			securitysdk.NewAPIError(http.StatusNotFound,
				securitysdk.ErrorCodeRequestNotFound,
				"no pending follow request from this account").WriteError(w)
		default:
			log.Error("failed to resolve follow request", "account_id", accountID, "err", err)
			securitysdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/guard"
	"github.com/hearthsocial/hearth/internal/security/service"
	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/securitysdk"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// AccessHandler answers access checks for the other Hearth services. A
// denial is a 200 with allowed=false and a machine code, never an HTTP
// error: the caller asked a question and got an answer.
type AccessHandler struct {
	Guards            *guard.Chains
	VisibilityService *service.VisibilityService
}

// HandleProfile handles POST /v1/access/profile
//
//	@Summary		Can the caller view a profile
//	@Description	Runs the profile viewing guard chain: the owner's block hides the profile entirely, a private profile requires an approved follow.
//	@Tags			Access
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.ProfileAccessRequest	true	"Profile owner"
//	@Success		200		{object}	securitysdk.AccessDecision			"The decision"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Malformed request"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"A guard failed to evaluate"
//	@Router			/v1/access/profile [post].
func (h *AccessHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.ProfileAccessRequest
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

	verdict := h.Guards.ProfileViewing().Evaluate(ctx, guard.Request{
		ActorID:  accountID,
		TargetID: req.TargetID,
	})
	writeDecision(w, log, verdict)
}

// HandleContent handles POST /v1/access/content
//
//	@Summary		Can the caller view a piece of content
//	@Description	Runs the content viewing guard chain: symmetric block check against the owner, then the content's privacy scope. Content without a scope is public.
//	@Tags			Access
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.ContentAccessRequest	true	"Content reference with its scope"
//	@Success		200		{object}	securitysdk.AccessDecision			"The decision"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Malformed request"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"A guard failed to evaluate"
//	@Router			/v1/access/content [post].
func (h *AccessHandler) HandleContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.ContentAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Content.OwnerID == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "content.owner_id is required").WriteError(w)
		return
	}

	content := toDomainContent(req.Content)
	verdict := h.Guards.ContentViewing().Evaluate(ctx, guard.Request{
		ActorID:  accountID,
		TargetID: content.OwnerID,
		Content:  &content,
	})
	writeDecision(w, log, verdict)
}

// HandleMessage handles POST /v1/access/message
//
//	@Summary		Can the caller message an account
//	@Description	Runs the messaging guard chain: symmetric block check, then the recipient's DM policy (everyone, followers, none).
//	@Tags			Access
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.MessageAccessRequest	true	"Message recipient"
//	@Success		200		{object}	securitysdk.AccessDecision			"The decision"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Malformed request"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"A guard failed to evaluate"
//	@Router			/v1/access/message [post].
func (h *AccessHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.MessageAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.RecipientID == "" {
		securitysdk.NewAPIError(http.StatusBadRequest,
			securitysdk.ErrorCodeInvalidRequest, "recipient_id is required").WriteError(w)
		return
	}

	verdict := h.Guards.Messaging(guard.Options{}).Evaluate(ctx, guard.Request{
		ActorID:  accountID,
		TargetID: req.RecipientID,
	})
	writeDecision(w, log, verdict)
}

// HandleInteraction handles POST /v1/access/interaction
//
//	@Summary		Can the caller interact with an account
//	@Description	Runs the interaction guard chain, which is the symmetric block check. Likes, replies and mentions all route through this.
//	@Tags			Access
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.InteractionAccessRequest	true	"Interaction target"
//	@Success		200		{object}	securitysdk.AccessDecision				"The decision"
//	@Failure		400		{object}	securitysdk.ErrorResponse				"Malformed request"
//	@Failure		401		{object}	securitysdk.ErrorResponse				"Invalid or missing access token"
//	@Failure		500		{object}	securitysdk.ErrorResponse				"A guard failed to evaluate"
//	@Router			/v1/access/interaction [post].
func (h *AccessHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.InteractionAccessRequest
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

	verdict := h.Guards.Interaction().Evaluate(ctx, guard.Request{
		ActorID:  accountID,
		TargetID: req.TargetID,
	})
	writeDecision(w, log, verdict)
}

// HandleFilter handles POST /v1/visibility/filter
//
//	@Summary		Filter a content batch for the caller
//	@Description	Strips items the caller must not see from a candidate feed and returns the survivors in input order. The following set and block relations are resolved once for the whole batch, so this is the endpoint feed builders should use instead of per-item access checks.
//	@Tags			Access
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		securitysdk.FilterContentRequest	true	"Candidate items with their scopes"
//	@Success		200		{object}	securitysdk.FilterContentResponse	"Visible items"
//	@Failure		400		{object}	securitysdk.ErrorResponse			"Malformed request"
//	@Failure		401		{object}	securitysdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		500		{object}	securitysdk.ErrorResponse			"Internal server error"
//	@Router			/v1/visibility/filter [post].
func (h *AccessHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		securitysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req securitysdk.FilterContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		securitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	items := make([]domain.ContentRef, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, toDomainContent(item))
	}

	visible, err := h.VisibilityService.FilterContent(ctx, accountID, items)
	if err != nil {
		log.Error("failed to filter content", "account_id", accountID, "err", err)
		securitysdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]securitysdk.ContentRef, 0, len(visible))
	for _, item := range visible {
		out = append(out, toSDKContent(item))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, securitysdk.FilterContentResponse{Items: out})
}

// writeDecision turns a chain verdict into the wire decision. Guard
// evaluation failures are the only 500 path; allow and deny are both data.
func writeDecision(w http.ResponseWriter, log *slog.Logger, v guard.Verdict) {
	switch v.Decision {
	case guard.DecisionAllow:
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, securitysdk.AccessDecision{Allowed: true})
	case guard.DecisionDeny:
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, securitysdk.AccessDecision{
			Allowed: false,
			Code:    v.Code,
		})
	default:
		log.Error("guard chain failed", "err", v.Err)
		securitysdk.NewAPIError(http.StatusInternalServerError,
			securitysdk.ErrorCodeGuardError, "access check failed").WriteError(w)
	}
}

func toDomainContent(c securitysdk.ContentRef) domain.ContentRef {
	ref := domain.ContentRef{ID: c.ID, OwnerID: c.OwnerID}
	if c.Scope != nil {
		ref.Scope = &domain.PrivacyScope{
			Level:           domain.PrivacyLevel(c.Scope.Level),
			SelectedUserIDs: c.Scope.SelectedUserIDs,
		}
	}
	return ref
}

func toSDKContent(c domain.ContentRef) securitysdk.ContentRef {
	ref := securitysdk.ContentRef{ID: c.ID, OwnerID: c.OwnerID}
	if c.Scope != nil {
		ref.Scope = &securitysdk.ContentScope{
			Level:           string(c.Scope.Level),
			SelectedUserIDs: c.Scope.SelectedUserIDs,
		}
	}
	return ref
}

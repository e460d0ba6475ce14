package securitysdk

import (
	"context"
	"net/http"
)

// CanViewProfile asks whether the caller may view the target's profile.
// A denial comes back as a normal AccessDecision with Allowed false, not
// as an HTTP error.
// Requires: access:check scope
func (s *Session) CanViewProfile(ctx context.Context, targetID string) (*AccessDecision, error) {
	return s.accessCheck(ctx, "/v1/access/profile", ProfileAccessRequest{TargetID: targetID})
}

// CanViewContent asks whether the caller may view a piece of content.
// Requires: access:check scope
func (s *Session) CanViewContent(ctx context.Context, content ContentRef) (*AccessDecision, error) {
	return s.accessCheck(ctx, "/v1/access/content", ContentAccessRequest{Content: content})
}

// CanMessage asks whether the caller may open a direct message thread with
// the recipient.
// Requires: access:check scope
func (s *Session) CanMessage(ctx context.Context, recipientID string) (*AccessDecision, error) {
	return s.accessCheck(ctx, "/v1/access/message", MessageAccessRequest{RecipientID: recipientID})
}

// CanInteract asks whether the caller may interact with the target at all
// (like, reply, mention).
// Requires: access:check scope
func (s *Session) CanInteract(ctx context.Context, targetID string) (*AccessDecision, error) {
	return s.accessCheck(ctx, "/v1/access/interaction", InteractionAccessRequest{TargetID: targetID})
}

// FilterContent strips items the caller must not see from a candidate feed
// and returns the survivors in their original order. Feed services call
// this once per page instead of running a per-item access check.
// Requires: access:check scope
func (s *Session) FilterContent(ctx context.Context, items []ContentRef) ([]ContentRef, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/visibility/filter",
		FilterContentRequest{Items: items},
		"access:check",
	)
	if err != nil {
		return nil, err
	}

	var filtered FilterContentResponse
	if err := decodeJSON(resp, &filtered, http.StatusOK); err != nil {
		return nil, err
	}

	return filtered.Items, nil
}

// accessCheck posts a check payload to one of the access endpoints and
// decodes the decision.
func (s *Session) accessCheck(ctx context.Context, path string, payload any) (*AccessDecision, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, payload, "access:check")
	if err != nil {
		return nil, err
	}

	var decision AccessDecision
	if err := decodeJSON(resp, &decision, http.StatusOK); err != nil {
		return nil, err
	}

	return &decision, nil
}

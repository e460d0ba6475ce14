package securitysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Follow starts following an account. If the target is private the call
// files a follow request instead; inspect the Result field to tell which
// happened.
// Requires: follows:write scope
func (s *Session) Follow(ctx context.Context, targetID string) (*FollowResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/follows",
		FollowCreateRequest{TargetID: targetID},
		"follows:write",
	)
	if err != nil {
		return nil, err
	}

	var result FollowResponse
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}

// Unfollow stops following an account.
// Requires: follows:write scope
func (s *Session) Unfollow(ctx context.Context, targetID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete,
		"/v1/follows/"+url.PathEscape(targetID), nil,
		"follows:write",
	)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ListFollowRequests returns a page of the caller's follow request inbox,
// newest first. status filters by "pending", "approved" or "rejected";
// empty means no filter. Pass zero for page or pageSize to use the server
// defaults.
// Requires: follows:read scope
func (s *Session) ListFollowRequests(ctx context.Context, status string, page, pageSize int) (*FollowRequestListResponse, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}

	path := "/v1/follow-requests"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, "follows:read")
	if err != nil {
		return nil, err
	}

	var list FollowRequestListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}

// ResolveFollowRequest approves or rejects a pending follow request from
// the given requester. Use FollowActionApprove or FollowActionReject.
// Requires: follows:write scope
func (s *Session) ResolveFollowRequest(ctx context.Context, requesterID, action string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost,
		"/v1/follow-requests/"+url.PathEscape(requesterID),
		FollowResolveRequest{Action: action},
		"follows:write",
	)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

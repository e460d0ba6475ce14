package securitysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Block blocks another account. The optional reason is a private note only
// the caller ever sees. Blocking removes any follow relationship between
// the two accounts in both directions.
// Requires: blocks:write scope
func (s *Session) Block(ctx context.Context, targetID, reason string) (*BlockRecordResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/blocks",
		BlockRequest{TargetID: targetID, Reason: reason},
		"blocks:write",
	)
	if err != nil {
		return nil, err
	}

	var record BlockRecordResponse
	if err := decodeJSON(resp, &record, http.StatusCreated); err != nil {
		return nil, err
	}

	return &record, nil
}

// Unblock removes a block the caller previously created.
// Requires: blocks:write scope
func (s *Session) Unblock(ctx context.Context, targetID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete,
		"/v1/blocks/"+url.PathEscape(targetID), nil,
		"blocks:write",
	)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ListBlocked returns a page of the caller's block list, newest first.
// Pass zero for page or pageSize to use the server defaults.
// Requires: blocks:read scope
func (s *Session) ListBlocked(ctx context.Context, page, pageSize int) (*BlockListResponse, error) {
	path := "/v1/blocks"
	if page > 0 || pageSize > 0 {
		q := url.Values{}
		if page > 0 {
			q.Set("page", fmt.Sprint(page))
		}
		if pageSize > 0 {
			q.Set("page_size", fmt.Sprint(pageSize))
		}
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, "blocks:read")
	if err != nil {
		return nil, err
	}

	var list BlockListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}

// GetBlockStatus describes the block relationship between the caller and a
// target from the caller's perspective.
// Requires: blocks:read scope
func (s *Session) GetBlockStatus(ctx context.Context, targetID string) (*BlockStatusResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet,
		"/v1/blocks/"+url.PathEscape(targetID)+"/status", nil,
		"blocks:read",
	)
	if err != nil {
		return nil, err
	}

	var status BlockStatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return nil, err
	}

	return &status, nil
}

package securitysdk

import (
	"context"
	"net/http"
)

// GetPrivacy returns the caller's current privacy settings.
// Requires: privacy:read scope
func (s *Session) GetPrivacy(ctx context.Context) (*PrivacySettingsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/privacy", nil, "privacy:read")
	if err != nil {
		return nil, err
	}

	var settings PrivacySettingsResponse
	if err := decodeJSON(resp, &settings, http.StatusOK); err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpdatePrivacy applies a partial privacy update and returns the merged
// settings. Omitted fields keep their current values.
// Requires: privacy:write scope
func (s *Session) UpdatePrivacy(ctx context.Context, patch PrivacyUpdateRequest) (*PrivacySettingsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/privacy", patch, "privacy:write")
	if err != nil {
		return nil, err
	}

	var settings PrivacySettingsResponse
	if err := decodeJSON(resp, &settings, http.StatusOK); err != nil {
		return nil, err
	}

	return &settings, nil
}

package security_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hearthsocial/hearth/pkg/securitysdk"
)

// TestPrivacyDefaults verifies a fresh account starts public and open.
func TestPrivacyDefaults(t *testing.T) {
	ts := setupSecurityService(t)

	alice := ts.createAccount(t, "alice")
	session := ts.login(t, alice)

	settings, err := session.GetPrivacy(t.Context())
	require.NoError(t, err)
	require.False(t, settings.IsPrivate)
	require.True(t, settings.AllowFollowRequests)
	require.True(t, settings.ShowOnlineStatus)
	require.Equal(t, "everyone", settings.DMPolicy)
}

// TestPrivacyPartialUpdate verifies PATCH semantics: supplied fields change,
// omitted fields keep their stored value.
func TestPrivacyPartialUpdate(t *testing.T) {
	ts := setupSecurityService(t)

	alice := ts.createAccount(t, "alice")
	session := ts.login(t, alice)

	isPrivate := true
	dmPolicy := "followers"
	updated, err := session.UpdatePrivacy(t.Context(), securitysdk.PrivacyUpdateRequest{
		IsPrivate: &isPrivate,
		DMPolicy:  &dmPolicy,
	})
	require.NoError(t, err)
	require.True(t, updated.IsPrivate)
	require.Equal(t, "followers", updated.DMPolicy)
	require.True(t, updated.AllowFollowRequests, "Untouched field keeps its value")
	require.True(t, updated.ShowOnlineStatus, "Untouched field keeps its value")

	// A second patch flips one more field without disturbing the first two
	showOnline := false
	updated, err = session.UpdatePrivacy(t.Context(), securitysdk.PrivacyUpdateRequest{
		ShowOnlineStatus: &showOnline,
	})
	require.NoError(t, err)
	require.True(t, updated.IsPrivate)
	require.Equal(t, "followers", updated.DMPolicy)
	require.False(t, updated.ShowOnlineStatus)

	// The settings survive a fresh read
	settings, err := session.GetPrivacy(t.Context())
	require.NoError(t, err)
	require.True(t, settings.IsPrivate)
	require.Equal(t, "followers", settings.DMPolicy)
	require.False(t, settings.ShowOnlineStatus)
}

// TestPrivacyInvalidDMPolicy verifies unknown dm_policy values are rejected
// with the stable machine code.
func TestPrivacyInvalidDMPolicy(t *testing.T) {
	ts := setupSecurityService(t)

	alice := ts.createAccount(t, "alice")
	session := ts.login(t, alice)

	bogus := "carrier_pigeon"
	_, err := session.UpdatePrivacy(t.Context(), securitysdk.PrivacyUpdateRequest{
		DMPolicy: &bogus,
	})
	assertCode(t, err, securitysdk.ErrorCodeInvalidPrivacySetting, "Unknown dm_policy")

	// Nothing changed
	settings, err := session.GetPrivacy(t.Context())
	require.NoError(t, err)
	require.Equal(t, "everyone", settings.DMPolicy)
}

// TestPrivacyGoingPublicKeepsPendingRequests verifies that turning off
// is_private leaves pending follow requests in the queue rather than
// auto-approving them.
func TestPrivacyGoingPublicKeepsPendingRequests(t *testing.T) {
	ts := setupSecurityService(t)

	alice := ts.createPrivateAccount(t, "alice")
	bob := ts.createAccount(t, "bob")
	aliceSession := ts.login(t, alice)
	bobSession := ts.login(t, bob)

	// Bob asks to follow the private account
	resp, err := bobSession.Follow(t.Context(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, securitysdk.FollowResultRequested, resp.Result)

	// Alice goes public
	isPrivate := false
	_, err = aliceSession.UpdatePrivacy(t.Context(), securitysdk.PrivacyUpdateRequest{
		IsPrivate: &isPrivate,
	})
	require.NoError(t, err)

	// The request is still pending, not silently approved
	pending, err := aliceSession.ListFollowRequests(t.Context(), "pending", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, pending.Total)
	require.Equal(t, bob.ID, pending.Requests[0].RequesterID)

	following, err := ts.Store.Follows().IsFollowing(t.Context(), bob.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, following, "No follow edge until alice approves")
}

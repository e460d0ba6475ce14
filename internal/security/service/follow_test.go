package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hearthsocial/hearth/internal/security/domain"
)

func privateAccepting() domain.PrivacySettings {
	p := domain.DefaultPrivacySettings()
	p.IsPrivate = true
	return p
}

func TestSendFollowRequestPublicTarget(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newFollowService(st)

	requester := seedAccount(t, ctx, st, "requester", domain.DefaultPrivacySettings())
	target := seedAccount(t, ctx, st, "target", domain.DefaultPrivacySettings())

	followType, err := svc.SendFollowRequest(ctx, requester.ID, target.ID)
	require.NoError(t, err)
	require.Equal(t, domain.FollowDirect, followType)

	// Requester is in the target's followers and the target is in the
	// requester's following, in one move.
	following, err := st.Follows().IsFollowing(ctx, requester.ID, target.ID)
	require.NoError(t, err)
	require.True(t, following)

	ids, err := st.Follows().ListFollowingIDs(ctx, requester.ID)
	require.NoError(t, err)
	require.Contains(t, ids, target.ID)

	t.Run("second attempt is already following", func(t *testing.T) {
		_, err := svc.SendFollowRequest(ctx, requester.ID, target.ID)
		require.ErrorIs(t, err, ErrAlreadyFollowing)
	})
}

func TestSendFollowRequestRejections(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	follows := newFollowService(st)
	blocks := newBlockService(st)

	requester := seedAccount(t, ctx, st, "requester", domain.DefaultPrivacySettings())

	t.Run("self follow", func(t *testing.T) {
		_, err := follows.SendFollowRequest(ctx, requester.ID, requester.ID)
		require.ErrorIs(t, err, ErrSelfAction)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := follows.SendFollowRequest(ctx, requester.ID, "missing")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("blocked either direction", func(t *testing.T) {
		blocker := seedAccount(t, ctx, st, "blocker", domain.DefaultPrivacySettings())
		_, err := blocks.Block(ctx, blocker.ID, requester.ID, "")
		require.NoError(t, err)

		_, err = follows.SendFollowRequest(ctx, requester.ID, blocker.ID)
		require.ErrorIs(t, err, ErrBlocked)
	})

	t.Run("requests disabled", func(t *testing.T) {
		settings := privateAccepting()
		settings.AllowFollowRequests = false
		fortress := seedAccount(t, ctx, st, "fortress", settings)

		_, err := follows.SendFollowRequest(ctx, requester.ID, fortress.ID)
		require.ErrorIs(t, err, ErrRequestsDisabled)
	})

	t.Run("duplicate pending request", func(t *testing.T) {
		guarded := seedAccount(t, ctx, st, "guarded", privateAccepting())

		followType, err := follows.SendFollowRequest(ctx, requester.ID, guarded.ID)
		require.NoError(t, err)
		require.Equal(t, domain.FollowRequested, followType)

		_, err = follows.SendFollowRequest(ctx, requester.ID, guarded.ID)
		require.ErrorIs(t, err, ErrDuplicateRequest)
	})
}

func TestResolveFollowRequest(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newFollowService(st)

	target := seedAccount(t, ctx, st, "target", privateAccepting())

	t.Run("approve creates the edge and removes the request", func(t *testing.T) {
		requester := seedAccount(t, ctx, st, "approved", domain.DefaultPrivacySettings())
		_, err := svc.SendFollowRequest(ctx, requester.ID, target.ID)
		require.NoError(t, err)

		require.NoError(t, svc.ResolveFollowRequest(ctx, target.ID, requester.ID, domain.FollowActionApprove))

		following, err := st.Follows().IsFollowing(ctx, requester.ID, target.ID)
		require.NoError(t, err)
		require.True(t, following)

		// Terminal: a second resolution has nothing to act on.
		err = svc.ResolveFollowRequest(ctx, target.ID, requester.ID, domain.FollowActionApprove)
		require.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("reject removes the request without an edge", func(t *testing.T) {
		requester := seedAccount(t, ctx, st, "rejected", domain.DefaultPrivacySettings())
		_, err := svc.SendFollowRequest(ctx, requester.ID, target.ID)
		require.NoError(t, err)

		require.NoError(t, svc.ResolveFollowRequest(ctx, target.ID, requester.ID, domain.FollowActionReject))

		following, err := st.Follows().IsFollowing(ctx, requester.ID, target.ID)
		require.NoError(t, err)
		require.False(t, following)

		// Rejection is not a ban: a fresh request goes through.
		followType, err := svc.SendFollowRequest(ctx, requester.ID, target.ID)
		require.NoError(t, err)
		require.Equal(t, domain.FollowRequested, followType)
	})

	t.Run("invalid action", func(t *testing.T) {
		err := svc.ResolveFollowRequest(ctx, target.ID, "whoever", domain.FollowRequestAction("maybe"))
		require.ErrorIs(t, err, ErrInvalidResolveAction)
	})

	t.Run("no pending request", func(t *testing.T) {
		stranger := seedAccount(t, ctx, st, "stranger", domain.DefaultPrivacySettings())
		err := svc.ResolveFollowRequest(ctx, target.ID, stranger.ID, domain.FollowActionApprove)
		require.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestListFollowRequests(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newFollowService(st)

	target := seedAccount(t, ctx, st, "target", privateAccepting())

	var requesters []domain.Account
	for i := 0; i < 3; i++ {
		r := seedAccount(t, ctx, st, fmt.Sprintf("requester%d", i), domain.DefaultPrivacySettings())
		_, err := svc.SendFollowRequest(ctx, r.ID, target.ID)
		require.NoError(t, err)
		requesters = append(requesters, r)
	}

	page, err := svc.ListFollowRequests(ctx, target.ID, domain.FollowRequestPending, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 3)

	// Newest first, with requester display data joined in.
	require.Equal(t, requesters[2].ID, page.Items[0].RequesterID)
	require.Equal(t, requesters[2].Username, page.Items[0].Username)
	require.Equal(t, domain.FollowRequestPending, page.Items[0].Status)
	require.Equal(t, requesters[0].ID, page.Items[2].RequesterID)

	t.Run("pagination", func(t *testing.T) {
		page, err := svc.ListFollowRequests(ctx, target.ID, "", 2, 2)
		require.NoError(t, err)
		require.Equal(t, 3, page.Total)
		require.Len(t, page.Items, 1)
		require.Equal(t, requesters[0].ID, page.Items[0].RequesterID)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.ListFollowRequests(ctx, target.ID, domain.FollowRequestStatus("lurking"), 1, 10)
		require.ErrorIs(t, err, ErrInvalidStatusFilter)
	})
}

func TestUnfollow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newFollowService(st)

	follower := seedAccount(t, ctx, st, "follower", domain.DefaultPrivacySettings())
	target := seedAccount(t, ctx, st, "target", domain.DefaultPrivacySettings())

	_, err := svc.SendFollowRequest(ctx, follower.ID, target.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Unfollow(ctx, follower.ID, target.ID))

	following, err := st.Follows().IsFollowing(ctx, follower.ID, target.ID)
	require.NoError(t, err)
	require.False(t, following)

	require.ErrorIs(t, svc.Unfollow(ctx, follower.ID, target.ID), ErrNotFollowing)
	require.ErrorIs(t, svc.Unfollow(ctx, follower.ID, follower.ID), ErrSelfAction)
}

// The full journey: a follower-scoped post on a private account stays hidden
// until the owner approves the viewer's follow request.
func TestFollowApprovalUnlocksFollowerContent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	follows := newFollowService(st)
	visibility := newVisibilityService(st)

	owner := seedAccount(t, ctx, st, "owner", privateAccepting())
	viewer := seedAccount(t, ctx, st, "viewer", domain.DefaultPrivacySettings())

	followersPost := post(owner.ID, &domain.PrivacyScope{Level: domain.VisibilityFollowers})

	ok, err := visibility.CanAccessContent(ctx, viewer.ID, followersPost)
	require.NoError(t, err)
	require.False(t, ok)

	followType, err := follows.SendFollowRequest(ctx, viewer.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, domain.FollowRequested, followType)

	// Still hidden while the request is pending.
	ok, err = visibility.CanAccessContent(ctx, viewer.ID, followersPost)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, follows.ResolveFollowRequest(ctx, owner.ID, viewer.ID, domain.FollowActionApprove))

	ok, err = visibility.CanAccessContent(ctx, viewer.ID, followersPost)
	require.NoError(t, err)
	require.True(t, ok)
}

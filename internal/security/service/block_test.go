package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hearthsocial/hearth/internal/security/domain"
)

func TestBlockDirectionalStorageSymmetricEnforcement(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newBlockService(st)

	alice := seedAccount(t, ctx, st, "alice", domain.DefaultPrivacySettings())
	bob := seedAccount(t, ctx, st, "bob", domain.DefaultPrivacySettings())

	record, err := svc.Block(ctx, alice.ID, bob.ID, "spam")
	require.NoError(t, err)
	require.Equal(t, alice.ID, record.BlockerID)
	require.Equal(t, bob.ID, record.BlockedID)
	require.Equal(t, "spam", record.Reason)
	require.NotEmpty(t, record.ID)

	// Storage is directional: only the blocker's record exists.
	blocked, err := svc.IsBlocked(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, blocked)

	blocked, err = svc.IsBlocked(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, blocked)

	// Enforcement is symmetric: neither side can interact.
	can, err := svc.CanInteract(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, can)

	can, err = svc.CanInteract(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, can)
}

func TestBlockUnblockRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newBlockService(st)

	alice := seedAccount(t, ctx, st, "alice", domain.DefaultPrivacySettings())
	bob := seedAccount(t, ctx, st, "bob", domain.DefaultPrivacySettings())

	_, err := svc.Block(ctx, alice.ID, bob.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.Unblock(ctx, alice.ID, bob.ID))

	can, err := svc.CanInteract(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, can)

	// Re-blocking after an unblock works; the old record is truly gone.
	_, err = svc.Block(ctx, alice.ID, bob.ID, "again")
	require.NoError(t, err)
}

func TestBlockRejectsSelfAndDuplicates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newBlockService(st)

	alice := seedAccount(t, ctx, st, "alice", domain.DefaultPrivacySettings())
	bob := seedAccount(t, ctx, st, "bob", domain.DefaultPrivacySettings())

	t.Run("self block", func(t *testing.T) {
		_, err := svc.Block(ctx, alice.ID, alice.ID, "")
		require.ErrorIs(t, err, ErrSelfAction)
	})

	t.Run("double block", func(t *testing.T) {
		_, err := svc.Block(ctx, alice.ID, bob.ID, "")
		require.NoError(t, err)

		_, err = svc.Block(ctx, alice.ID, bob.ID, "")
		require.ErrorIs(t, err, ErrAlreadyBlocked)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := svc.Block(ctx, alice.ID, "does-not-exist", "")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("unblock without a record", func(t *testing.T) {
		carol := seedAccount(t, ctx, st, "carol", domain.DefaultPrivacySettings())
		require.ErrorIs(t, svc.Unblock(ctx, alice.ID, carol.ID), ErrNotBlocked)
	})
}

func TestCanInteractSelfAlwaysTrue(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newBlockService(st)

	alice := seedAccount(t, ctx, st, "alice", domain.DefaultPrivacySettings())

	can, err := svc.CanInteract(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, can)
}

func TestListBlockedPagination(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newBlockService(st)

	owner := seedAccount(t, ctx, st, "owner", domain.DefaultPrivacySettings())

	var targets []domain.Account
	for i := 0; i < 5; i++ {
		targets = append(targets, seedAccount(t, ctx, st, fmt.Sprintf("target%d", i), domain.DefaultPrivacySettings()))
	}
	for _, target := range targets {
		_, err := svc.Block(ctx, owner.ID, target.ID, "reason "+target.Username)
		require.NoError(t, err)
	}

	first, err := svc.ListBlocked(ctx, owner.ID, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 5, first.Total)
	require.Equal(t, 1, first.Page)
	require.Equal(t, 2, first.PageSize)
	require.Len(t, first.Items, 2)

	// Newest first: the last block leads.
	require.Equal(t, targets[4].ID, first.Items[0].AccountID)
	require.Equal(t, targets[4].Username, first.Items[0].Username)
	require.Equal(t, "reason target4", first.Items[0].Reason)
	require.Equal(t, targets[3].ID, first.Items[1].AccountID)

	last, err := svc.ListBlocked(ctx, owner.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	require.Equal(t, targets[0].ID, last.Items[0].AccountID)

	t.Run("page bounds normalized", func(t *testing.T) {
		page, err := svc.ListBlocked(ctx, owner.ID, 0, -1)
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, defaultPageSize, page.PageSize)
	})
}

func TestBlockStatus(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newBlockService(st)

	alice := seedAccount(t, ctx, st, "alice", domain.DefaultPrivacySettings())
	bob := seedAccount(t, ctx, st, "bob", domain.DefaultPrivacySettings())

	status, err := svc.Status(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, domain.BlockStatus{IsBlocked: false, IsBlockedBy: false, CanInteract: true}, status)

	_, err = svc.Block(ctx, bob.ID, alice.ID, "")
	require.NoError(t, err)

	status, err = svc.Status(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, status.IsBlocked)
	require.True(t, status.IsBlockedBy)
	require.False(t, status.CanInteract)

	t.Run("self status", func(t *testing.T) {
		status, err := svc.Status(ctx, alice.ID, alice.ID)
		require.NoError(t, err)
		require.True(t, status.CanInteract)
	})
}

package guard

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/hearthsocial/hearth/internal/security/audit"
	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/service"
	"github.com/hearthsocial/hearth/internal/security/store"
	"github.com/hearthsocial/hearth/internal/security/store/drivers/sqlite"
	"github.com/hearthsocial/hearth/pkg/idx"
)

func newChains(t *testing.T) (*Chains, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &Chains{
		Blocks:     &service.BlockService{Store: st, Audit: audit.Nop{}},
		Visibility: &service.VisibilityService{Store: st, Audit: audit.Nop{}},
		TwoFactor:  &service.TwoFactorService{Store: st, Audit: audit.Nop{}, Issuer: "Hearth"},
	}, st
}

func seedAccount(t *testing.T, ctx context.Context, st store.Store, username string, privacy domain.PrivacySettings) domain.Account {
	t.Helper()

	now := time.Now().UTC()
	account := domain.Account{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  username,
		PasswordHash: "unused",
		Privacy:      privacy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Accounts().CreateAccount(ctx, account))
	return account
}

func TestInteractionChainBlocksBothDirections(t *testing.T) {
	ctx := context.Background()
	chains, st := newChains(t)

	alice := seedAccount(t, ctx, st, "alice", domain.DefaultPrivacySettings())
	bob := seedAccount(t, ctx, st, "bob", domain.DefaultPrivacySettings())
	carol := seedAccount(t, ctx, st, "carol", domain.DefaultPrivacySettings())

	_, err := chains.Blocks.Block(ctx, alice.ID, bob.ID, "spam")
	require.NoError(t, err)

	chain := chains.Interaction()

	// The blocker is shut out too, despite owning the record.
	v := chain.Evaluate(ctx, Request{ActorID: alice.ID, TargetID: bob.ID})
	require.Equal(t, DecisionDeny, v.Decision)
	require.Equal(t, CodeBlocked, v.Code)

	v = chain.Evaluate(ctx, Request{ActorID: bob.ID, TargetID: alice.ID})
	require.Equal(t, DecisionDeny, v.Decision)
	require.Equal(t, CodeBlocked, v.Code)

	v = chain.Evaluate(ctx, Request{ActorID: carol.ID, TargetID: alice.ID})
	require.Equal(t, DecisionAllow, v.Decision)
}

func TestContentViewingChainOrder(t *testing.T) {
	ctx := context.Background()
	chains, st := newChains(t)

	owner := seedAccount(t, ctx, st, "owner", domain.DefaultPrivacySettings())
	viewer := seedAccount(t, ctx, st, "viewer", domain.DefaultPrivacySettings())

	publicPost := &domain.ContentRef{
		ID:      idx.New().String(),
		OwnerID: owner.ID,
		Scope:   &domain.PrivacyScope{Level: domain.VisibilityPublic},
	}
	privatePost := &domain.ContentRef{
		ID:      idx.New().String(),
		OwnerID: owner.ID,
		Scope:   &domain.PrivacyScope{Level: domain.VisibilityOnlyMe},
	}

	chain := chains.ContentViewing()

	t.Run("owner sees everything", func(t *testing.T) {
		v := chain.Evaluate(ctx, Request{ActorID: owner.ID, Content: privatePost})
		require.Equal(t, DecisionAllow, v.Decision)
	})

	t.Run("only_me hidden from others", func(t *testing.T) {
		v := chain.Evaluate(ctx, Request{ActorID: viewer.ID, Content: privatePost})
		require.Equal(t, DecisionDeny, v.Decision)
		require.Equal(t, CodeContentHidden, v.Code)
	})

	t.Run("public content visible", func(t *testing.T) {
		v := chain.Evaluate(ctx, Request{ActorID: viewer.ID, Content: publicPost})
		require.Equal(t, DecisionAllow, v.Decision)
	})

	t.Run("block check runs before visibility", func(t *testing.T) {
		_, err := chains.Blocks.Block(ctx, owner.ID, viewer.ID, "")
		require.NoError(t, err)

		v := chain.Evaluate(ctx, Request{ActorID: viewer.ID, Content: publicPost})
		require.Equal(t, DecisionDeny, v.Decision)
		require.Equal(t, CodeBlocked, v.Code)
	})
}

func TestProfileViewingChainIsDirectional(t *testing.T) {
	ctx := context.Background()
	chains, st := newChains(t)

	target := seedAccount(t, ctx, st, "target", domain.DefaultPrivacySettings())
	viewer := seedAccount(t, ctx, st, "viewer", domain.DefaultPrivacySettings())

	chain := chains.ProfileViewing()

	t.Run("public profile visible", func(t *testing.T) {
		v := chain.Evaluate(ctx, Request{ActorID: viewer.ID, TargetID: target.ID})
		require.Equal(t, DecisionAllow, v.Decision)
	})

	t.Run("viewer blocking the target does not hide it", func(t *testing.T) {
		_, err := chains.Blocks.Block(ctx, viewer.ID, target.ID, "")
		require.NoError(t, err)

		v := chain.Evaluate(ctx, Request{ActorID: viewer.ID, TargetID: target.ID})
		require.Equal(t, DecisionAllow, v.Decision)

		require.NoError(t, chains.Blocks.Unblock(ctx, viewer.ID, target.ID))
	})

	t.Run("target blocking the viewer hides it", func(t *testing.T) {
		_, err := chains.Blocks.Block(ctx, target.ID, viewer.ID, "")
		require.NoError(t, err)

		v := chain.Evaluate(ctx, Request{ActorID: viewer.ID, TargetID: target.ID})
		require.Equal(t, DecisionDeny, v.Decision)
		require.Equal(t, CodeProfilePrivate, v.Code)

		require.NoError(t, chains.Blocks.Unblock(ctx, target.ID, viewer.ID))
	})

	t.Run("private profile needs an approved follow", func(t *testing.T) {
		isPrivate := true
		_, err := chains.Visibility.UpdatePrivacy(ctx, target.ID, domain.PrivacyPatch{IsPrivate: &isPrivate})
		require.NoError(t, err)

		v := chain.Evaluate(ctx, Request{ActorID: viewer.ID, TargetID: target.ID})
		require.Equal(t, DecisionDeny, v.Decision)
		require.Equal(t, CodeProfilePrivate, v.Code)

		require.NoError(t, st.Follows().CreateFollow(ctx, viewer.ID, target.ID))

		v = chain.Evaluate(ctx, Request{ActorID: viewer.ID, TargetID: target.ID})
		require.Equal(t, DecisionAllow, v.Decision)
	})
}

func TestMessagingChain(t *testing.T) {
	ctx := context.Background()
	chains, st := newChains(t)

	closed := domain.DefaultPrivacySettings()
	closed.AllowDirectMessages = domain.DMNone

	sender := seedAccount(t, ctx, st, "sender", domain.DefaultPrivacySettings())
	open := seedAccount(t, ctx, st, "open", domain.DefaultPrivacySettings())
	hermit := seedAccount(t, ctx, st, "hermit", closed)

	chain := chains.Messaging(Options{})

	v := chain.Evaluate(ctx, Request{ActorID: sender.ID, TargetID: open.ID})
	require.Equal(t, DecisionAllow, v.Decision)

	v = chain.Evaluate(ctx, Request{ActorID: sender.ID, TargetID: hermit.ID})
	require.Equal(t, DecisionDeny, v.Decision)
	require.Equal(t, CodeMessagesClosed, v.Code)

	v = chain.Evaluate(ctx, Request{ActorID: sender.ID, TargetID: sender.ID})
	require.Equal(t, DecisionDeny, v.Decision)
	require.Equal(t, CodeSelfAction, v.Code)
}

func TestSensitiveOperationChainTwoFactorGate(t *testing.T) {
	ctx := context.Background()
	chains, st := newChains(t)

	casual := seedAccount(t, ctx, st, "casual", domain.DefaultPrivacySettings())
	careful := seedAccount(t, ctx, st, "careful", domain.DefaultPrivacySettings())

	chain := chains.SensitiveOperation()

	t.Run("unenrolled actor passes without a code", func(t *testing.T) {
		v := chain.Evaluate(ctx, Request{ActorID: casual.ID})
		require.Equal(t, DecisionAllow, v.Decision)
	})

	// Enroll the careful account.
	enrollment, err := chains.TwoFactor.BeginSetup(ctx, careful.ID)
	require.NoError(t, err)
	setupCode, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	_, err = chains.TwoFactor.CompleteSetup(ctx, careful.ID, enrollment.Secret, setupCode)
	require.NoError(t, err)

	t.Run("enrolled actor without a code is challenged", func(t *testing.T) {
		v := chain.Evaluate(ctx, Request{ActorID: careful.ID})
		require.Equal(t, DecisionDeny, v.Decision)
		require.Equal(t, CodeTwoFactorRequired, v.Code)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		valid, err := totp.GenerateCode(enrollment.Secret, time.Now())
		require.NoError(t, err)
		mutated := mutateDigit(valid)

		v := chain.Evaluate(ctx, Request{ActorID: careful.ID, TwoFactorCode: mutated})
		require.Equal(t, DecisionDeny, v.Decision)
		require.Equal(t, CodeInvalidTwoFactor, v.Code)
	})

	t.Run("valid code passes", func(t *testing.T) {
		code, err := totp.GenerateCode(enrollment.Secret, time.Now())
		require.NoError(t, err)

		v := chain.Evaluate(ctx, Request{ActorID: careful.ID, TwoFactorCode: code})
		require.Equal(t, DecisionAllow, v.Decision)
	})
}

// mutateDigit bumps the first digit so the code no longer matches any window.
func mutateDigit(code string) string {
	b := []byte(code)
	b[0] = '0' + (b[0]-'0'+1)%10
	return string(b)
}

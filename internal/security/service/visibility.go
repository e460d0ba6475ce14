package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/hearthsocial/hearth/internal/security/audit"
	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

var ErrInvalidPrivacySetting = errors.New("invalid privacy setting")

// VisibilityService evaluates who may see what: content under per-post
// privacy scopes, profiles under account privacy, and message reachability
// under DM policies.
type VisibilityService struct {
	Store store.Store
	Audit audit.Sink
}

func (s *VisibilityService) record(ctx context.Context, e audit.Event) {
	if s.Audit != nil {
		s.Audit.Record(ctx, e)
	}
}

// CanAccessContent decides a single content access. The viewer's following
// set is resolved only when the scope actually needs it.
func (s *VisibilityService) CanAccessContent(ctx context.Context, viewerID string, content domain.ContentRef) (bool, error) {
	var following map[string]bool

	if needsFollowing(content, viewerID) {
		set, err := s.followingSet(ctx, viewerID)
		if err != nil {
			return false, err
		}
		following = set
	}

	return domain.ScopeAllows(content, viewerID, following), nil
}

// FilterContent returns the items the viewer may see, in input order. The
// viewer's following set and block relations are each fetched once for the
// whole batch. Items owned by blocked accounts (either direction) are
// dropped along with scope-denied ones.
func (s *VisibilityService) FilterContent(ctx context.Context, viewerID string, items []domain.ContentRef) ([]domain.ContentRef, error) {
	if len(items) == 0 {
		return nil, nil
	}

	following, err := s.followingSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	blockedIDs, err := s.Store.Blocks().ListBlockedEitherDirection(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	blocked := make(map[string]bool, len(blockedIDs))
	for _, id := range blockedIDs {
		blocked[id] = true
	}

	visible := make([]domain.ContentRef, 0, len(items))
	for _, item := range items {
		if item.OwnerID != viewerID && blocked[item.OwnerID] {
			continue
		}
		if !domain.ScopeAllows(item, viewerID, following) {
			continue
		}
		visible = append(visible, item)
	}
	return visible, nil
}

// CanAccessProfile decides whether the viewer may see the target's profile.
// A block by the target hides the profile; a block by the viewer does not.
func (s *VisibilityService) CanAccessProfile(ctx context.Context, viewerID, targetID string) (bool, error) {
	if viewerID == targetID {
		return true, nil
	}

	target, err := s.Store.Accounts().GetAccountByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrAccountNotFound
		}
		return false, err
	}

	blocked, err := s.Store.Blocks().IsBlocked(ctx, targetID, viewerID)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}

	if !target.Privacy.IsPrivate {
		return true, nil
	}

	return s.Store.Follows().IsFollowing(ctx, viewerID, targetID)
}

// CanMessage decides whether sender may open a DM to recipient: self and
// blocked pairs never, then the recipient's DM policy.
func (s *VisibilityService) CanMessage(ctx context.Context, senderID, recipientID string) (bool, error) {
	if senderID == recipientID {
		return false, nil
	}

	recipient, err := s.Store.Accounts().GetAccountByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrAccountNotFound
		}
		return false, err
	}

	blocked, err := s.Store.Blocks().AnyBetween(ctx, senderID, recipientID)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}

	switch recipient.Privacy.AllowDirectMessages {
	case domain.DMNone:
		return false, nil
	case domain.DMFollowers:
		return s.Store.Follows().IsFollowing(ctx, senderID, recipientID)
	default:
		return true, nil
	}
}

// GetPrivacy returns the account's current privacy settings.
func (s *VisibilityService) GetPrivacy(ctx context.Context, accountID string) (domain.PrivacySettings, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PrivacySettings{}, ErrAccountNotFound
		}
		return domain.PrivacySettings{}, err
	}
	return account.Privacy, nil
}

// UpdatePrivacy applies a partial settings change and returns the updated
// settings. Unset patch fields keep their stored value.
func (s *VisibilityService) UpdatePrivacy(ctx context.Context, accountID string, patch domain.PrivacyPatch) (domain.PrivacySettings, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the only enum field before touching the store.
	if patch.AllowDirectMessages != nil && !patch.AllowDirectMessages.Valid() {
		return domain.PrivacySettings{}, ErrInvalidPrivacySetting
	}

	// 2. One conditional UPDATE; nil fields never overwrite.
	if err := s.Store.Accounts().UpdatePrivacy(ctx, accountID, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PrivacySettings{}, ErrAccountNotFound
		}
		log.Error("failed to update privacy settings", slog.Any("error", err))
		return domain.PrivacySettings{}, err
	}

	s.record(ctx, audit.Event{
		ActorID:  accountID,
		Type:     audit.EventPrivacyUpdated,
		Success:  true,
		Metadata: privacyPatchMetadata(patch),
	})

	// 3. Read back the merged result.
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.PrivacySettings{}, err
	}

	log.Info("privacy settings updated", slog.String("account_id", accountID))
	return account.Privacy, nil
}

func (s *VisibilityService) followingSet(ctx context.Context, viewerID string) (map[string]bool, error) {
	ids, err := s.Store.Follows().ListFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func needsFollowing(content domain.ContentRef, viewerID string) bool {
	return content.Scope != nil &&
		content.Scope.Level == domain.VisibilityFollowers &&
		content.OwnerID != viewerID
}

func privacyPatchMetadata(patch domain.PrivacyPatch) map[string]string {
	md := make(map[string]string, 4)
	if patch.IsPrivate != nil {
		md["is_private"] = strconv.FormatBool(*patch.IsPrivate)
	}
	if patch.AllowFollowRequests != nil {
		md["allow_follow_requests"] = strconv.FormatBool(*patch.AllowFollowRequests)
	}
	if patch.ShowOnlineStatus != nil {
		md["show_online_status"] = strconv.FormatBool(*patch.ShowOnlineStatus)
	}
	if patch.AllowDirectMessages != nil {
		md["allow_direct_messages"] = string(*patch.AllowDirectMessages)
	}
	return md
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hearthsocial/hearth/internal/security/audit"
	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
	"github.com/hearthsocial/hearth/pkg/idx"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

var (
	ErrBlocked              = errors.New("interaction blocked between accounts")
	ErrAlreadyFollowing     = errors.New("already following this account")
	ErrNotFollowing         = errors.New("not following this account")
	ErrDuplicateRequest     = errors.New("a pending follow request already exists")
	ErrRequestsDisabled     = errors.New("target account does not accept follow requests")
	ErrRequestNotFound      = errors.New("follow request not found")
	ErrInvalidResolveAction = errors.New("resolve action must be approve or reject")
	ErrInvalidStatusFilter  = errors.New("invalid follow request status filter")
)

// FollowService owns follow edges and the approval workflow private
// accounts put in front of them.
type FollowService struct {
	Store store.Store
	Audit audit.Sink
}

func (s *FollowService) record(ctx context.Context, e audit.Event) {
	if s.Audit != nil {
		s.Audit.Record(ctx, e)
	}
}

// SendFollowRequest either follows directly (public target) or files a
// pending request (private target that accepts them). The returned
// FollowType tells the caller which happened.
func (s *FollowService) SendFollowRequest(ctx context.Context, requesterID, targetID string) (domain.FollowType, error) {
	log := slogx.FromContext(ctx)

	// 1. No self-follow.
	if requesterID == targetID {
		return "", ErrSelfAction
	}

	// 2. The target must exist; its privacy settings drive the branch.
	target, err := s.Store.Accounts().GetAccountByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		log.Error("failed to fetch follow target", slog.Any("error", err))
		return "", err
	}

	// 3. A block in either direction ends it here.
	blocked, err := s.Store.Blocks().AnyBetween(ctx, requesterID, targetID)
	if err != nil {
		return "", err
	}
	if blocked {
		return "", ErrBlocked
	}

	// 4. Already a follower.
	following, err := s.Store.Follows().IsFollowing(ctx, requesterID, targetID)
	if err != nil {
		return "", err
	}
	if following {
		return "", ErrAlreadyFollowing
	}

	// 5. Public target: create the edge immediately.
	if !target.Privacy.IsPrivate {
		if err := s.Store.Follows().CreateFollow(ctx, requesterID, targetID); err != nil {
			log.Error("failed to create follow edge", slog.Any("error", err))
			return "", err
		}

		s.record(ctx, audit.Event{
			ActorID: requesterID,
			Type:    audit.EventFollowCreated,
			Success: true,
			Metadata: map[string]string{
				"target_id": targetID,
			},
		})
		return domain.FollowDirect, nil
	}

	// 6. Private target that refuses requests.
	if !target.Privacy.AllowFollowRequests {
		return "", ErrRequestsDisabled
	}

	// 7. File the pending request; the unique pair index rejects a
	// concurrent duplicate.
	req := domain.FollowRequest{
		ID:          idx.New().String(),
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      domain.FollowRequestPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.FollowRequests().CreateFollowRequest(ctx, req); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrDuplicateRequest
		}
		log.Error("failed to create follow request", slog.Any("error", err))
		return "", err
	}

	s.record(ctx, audit.Event{
		ActorID: requesterID,
		Type:    audit.EventFollowRequested,
		Success: true,
		Metadata: map[string]string{
			"target_id": targetID,
		},
	})

	log.Info("follow request created",
		slog.String("requester_id", requesterID),
		slog.String("target_id", targetID),
	)
	return domain.FollowRequested, nil
}

// ResolveFollowRequest approves or rejects a pending request. Either way the
// request is gone afterwards; a fresh SendFollowRequest is the only path to
// resubmission.
func (s *FollowService) ResolveFollowRequest(ctx context.Context, targetID, requesterID string, action domain.FollowRequestAction) error {
	log := slogx.FromContext(ctx)

	// 1. Validate the action verb.
	if !action.Valid() {
		return ErrInvalidResolveAction
	}

	// 2. Find the pending request.
	req, err := s.Store.FollowRequests().GetPendingRequest(ctx, targetID, requesterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRequestNotFound
		}
		log.Error("failed to fetch follow request", slog.Any("error", err))
		return err
	}

	// 3. Approve creates the edge and removes the request atomically;
	// reject just removes it. Losing a resolution race surfaces as
	// ErrRequestNotFound for the second resolver.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if action == domain.FollowActionApprove {
			if err := tx.Follows().CreateFollow(ctx, requesterID, targetID); err != nil {
				return err
			}
		}
		return tx.FollowRequests().DeleteFollowRequest(ctx, req.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRequestNotFound
		}
		log.Error("failed to resolve follow request", slog.Any("error", err))
		return err
	}

	s.record(ctx, audit.Event{
		ActorID: targetID,
		Type:    audit.EventFollowResolved,
		Success: true,
		Metadata: map[string]string{
			"requester_id": requesterID,
			"action":       string(action),
		},
	})

	log.Info("follow request resolved",
		slog.String("target_id", targetID),
		slog.String("requester_id", requesterID),
		slog.String("action", string(action)),
	)
	return nil
}

// ListFollowRequests returns the target's request inbox newest-first,
// optionally filtered by status.
func (s *FollowService) ListFollowRequests(ctx context.Context, targetID string, status domain.FollowRequestStatus, page, pageSize int) (domain.FollowRequestPage, error) {
	switch status {
	case "", domain.FollowRequestPending, domain.FollowRequestApproved, domain.FollowRequestRejected:
	default:
		return domain.FollowRequestPage{}, ErrInvalidStatusFilter
	}

	page, pageSize = normalizePage(page, pageSize)

	items, err := s.Store.FollowRequests().ListRequestsForTarget(ctx, targetID, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return domain.FollowRequestPage{}, err
	}
	total, err := s.Store.FollowRequests().CountRequestsForTarget(ctx, targetID, status)
	if err != nil {
		return domain.FollowRequestPage{}, err
	}

	return domain.FollowRequestPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Unfollow removes the follower's edge to targetID.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return ErrSelfAction
	}

	if err := s.Store.Follows().DeleteFollow(ctx, followerID, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFollowing
		}
		return err
	}

	s.record(ctx, audit.Event{
		ActorID: followerID,
		Type:    audit.EventFollowRemoved,
		Success: true,
		Metadata: map[string]string{
			"target_id": targetID,
		},
	})
	return nil
}

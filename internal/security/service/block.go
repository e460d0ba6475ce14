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
	ErrSelfAction      = errors.New("action cannot target the acting account")
	ErrAlreadyBlocked  = errors.New("account is already blocked")
	ErrNotBlocked      = errors.New("account is not blocked")
	ErrAccountNotFound = errors.New("account not found")
)

// BlockService owns block records and the derived interaction predicate.
// Storage is directional (the blocker's side only); enforcement is symmetric
// through CanInteract.
type BlockService struct {
	Store store.Store
	Audit audit.Sink
}

func (s *BlockService) record(ctx context.Context, e audit.Event) {
	if s.Audit != nil {
		s.Audit.Record(ctx, e)
	}
}

// Block creates a directional block record against targetID.
func (s *BlockService) Block(ctx context.Context, blockerID, targetID, reason string) (domain.BlockRecord, error) {
	log := slogx.FromContext(ctx)

	// 1. Self-blocking is always rejected.
	if blockerID == targetID {
		return domain.BlockRecord{}, ErrSelfAction
	}

	// 2. The target must exist.
	if _, err := s.Store.Accounts().GetAccountByID(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.BlockRecord{}, ErrAccountNotFound
		}
		log.Error("failed to fetch block target", slog.Any("error", err))
		return domain.BlockRecord{}, err
	}

	// 3. Insert; the unique pair index turns a concurrent duplicate into
	// ErrAlreadyExists, so there is no check-then-insert race.
	rec := domain.BlockRecord{
		ID:        idx.New().String(),
		BlockerID: blockerID,
		BlockedID: targetID,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Blocks().CreateBlock(ctx, rec); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.BlockRecord{}, ErrAlreadyBlocked
		}
		log.Error("failed to create block record", slog.Any("error", err))
		return domain.BlockRecord{}, err
	}

	s.record(ctx, audit.Event{
		ActorID: blockerID,
		Type:    audit.EventBlockCreated,
		Success: true,
		Metadata: map[string]string{
			"target_id": targetID,
		},
	})

	log.Info("account blocked",
		slog.String("blocker_id", blockerID),
		slog.String("blocked_id", targetID),
	)
	return rec, nil
}

// Unblock removes the blocker's record against targetID.
func (s *BlockService) Unblock(ctx context.Context, blockerID, targetID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Blocks().DeleteBlock(ctx, blockerID, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotBlocked
		}
		log.Error("failed to delete block record", slog.Any("error", err))
		return err
	}

	s.record(ctx, audit.Event{
		ActorID: blockerID,
		Type:    audit.EventBlockRemoved,
		Success: true,
		Metadata: map[string]string{
			"target_id": targetID,
		},
	})

	log.Info("account unblocked",
		slog.String("blocker_id", blockerID),
		slog.String("blocked_id", targetID),
	)
	return nil
}

// IsBlocked reports whether a holds an active block against b. Directional;
// most callers want CanInteract instead.
func (s *BlockService) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	return s.Store.Blocks().IsBlocked(ctx, a, b)
}

// CanInteract is the single authoritative interaction gate: false when a
// block exists in either direction, true otherwise. An account can always
// interact with itself.
func (s *BlockService) CanInteract(ctx context.Context, a, b string) (bool, error) {
	if a == b {
		return true, nil
	}

	blocked, err := s.Store.Blocks().AnyBetween(ctx, a, b)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// ListBlocked returns the owner's block list newest-first with the blocked
// accounts' display data joined in.
func (s *BlockService) ListBlocked(ctx context.Context, ownerID string, page, pageSize int) (domain.BlockedPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	items, err := s.Store.Blocks().ListBlocked(ctx, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return domain.BlockedPage{}, err
	}
	total, err := s.Store.Blocks().CountBlocked(ctx, ownerID)
	if err != nil {
		return domain.BlockedPage{}, err
	}

	return domain.BlockedPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Status describes the block relationship between viewer and target from
// the viewer's side.
func (s *BlockService) Status(ctx context.Context, viewerID, targetID string) (domain.BlockStatus, error) {
	if viewerID == targetID {
		return domain.BlockStatus{CanInteract: true}, nil
	}

	isBlocked, err := s.Store.Blocks().IsBlocked(ctx, viewerID, targetID)
	if err != nil {
		return domain.BlockStatus{}, err
	}
	isBlockedBy, err := s.Store.Blocks().IsBlocked(ctx, targetID, viewerID)
	if err != nil {
		return domain.BlockStatus{}, err
	}

	return domain.BlockStatus{
		IsBlocked:   isBlocked,
		IsBlockedBy: isBlockedBy,
		CanInteract: !isBlocked && !isBlockedBy,
	}, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}

package sqlite

import (
	"context"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
)

type blocksRepo struct {
	db dbtx
}

func (r *blocksRepo) CreateBlock(ctx context.Context, b domain.BlockRecord) error {
	// The unique (blocker_id, blocked_id) index arbitrates concurrent
	// inserts; the loser gets ErrAlreadyExists.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blocks (id, blocker_id, blocked_id, reason, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.BlockerID, b.BlockedID, b.Reason, b.CreatedAt,
	)
	return mapConflict(err)
}

func (r *blocksRepo) DeleteBlock(ctx context.Context, blockerID, blockedID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM blocks WHERE blocker_id = ? AND blocked_id = ?`,
		blockerID, blockedID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *blocksRepo) IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM blocks WHERE blocker_id = ? AND blocked_id = ?`,
		blockerID, blockedID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *blocksRepo) AnyBetween(ctx context.Context, a, b string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM blocks
		WHERE (blocker_id = ? AND blocked_id = ?)
		   OR (blocker_id = ? AND blocked_id = ?)`,
		a, b, b, a,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *blocksRepo) ListBlocked(ctx context.Context, blockerID string, limit, offset int) ([]domain.BlockedAccount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.blocked_id, a.username, a.display_name, a.avatar_url, b.reason, b.created_at
		FROM blocks b
		JOIN accounts a ON a.id = b.blocked_id
		WHERE b.blocker_id = ?
		ORDER BY b.id DESC
		LIMIT ? OFFSET ?`,
		blockerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BlockedAccount
	for rows.Next() {
		var e domain.BlockedAccount
		if err := rows.Scan(&e.AccountID, &e.Username, &e.DisplayName, &e.AvatarURL, &e.Reason, &e.BlockedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *blocksRepo) CountBlocked(ctx context.Context, blockerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM blocks WHERE blocker_id = ?`, blockerID,
	).Scan(&count)
	return count, err
}

func (r *blocksRepo) ListBlockedEitherDirection(ctx context.Context, accountID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT blocked_id FROM blocks WHERE blocker_id = ?
		UNION
		SELECT blocker_id FROM blocks WHERE blocked_id = ?`,
		accountID, accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

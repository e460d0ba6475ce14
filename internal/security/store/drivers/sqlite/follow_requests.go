package sqlite

import (
	"context"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
)

type followRequestsRepo struct {
	db dbtx
}

func (r *followRequestsRepo) CreateFollowRequest(ctx context.Context, req domain.FollowRequest) error {
	// Resolved requests are deleted, so the unique (requester_id, target_id)
	// index means "at most one pending per pair".
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO follow_requests (id, requester_id, target_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		req.ID, req.RequesterID, req.TargetID, string(req.Status), req.CreatedAt,
	)
	return mapConflict(err)
}

func (r *followRequestsRepo) GetPendingRequest(ctx context.Context, targetID, requesterID string) (domain.FollowRequest, error) {
	var req domain.FollowRequest
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, requester_id, target_id, status, created_at
		FROM follow_requests
		WHERE target_id = ? AND requester_id = ? AND status = ?`,
		targetID, requesterID, string(domain.FollowRequestPending),
	).Scan(&req.ID, &req.RequesterID, &req.TargetID, &status, &req.CreatedAt)
	if err != nil {
		return domain.FollowRequest{}, mapNotFound(err)
	}
	req.Status = domain.FollowRequestStatus(status)
	return req, nil
}

func (r *followRequestsRepo) DeleteFollowRequest(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follow_requests WHERE id = ?`, id,
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

func (r *followRequestsRepo) ListRequestsForTarget(ctx context.Context, targetID string, status domain.FollowRequestStatus, limit, offset int) ([]domain.FollowRequestEntry, error) {
	query := `
		SELECT fr.id, fr.requester_id, a.username, a.display_name, a.avatar_url, fr.status, fr.created_at
		FROM follow_requests fr
		JOIN accounts a ON a.id = fr.requester_id
		WHERE fr.target_id = ?`
	args := []any{targetID}
	if status != "" {
		query += ` AND fr.status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY fr.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FollowRequestEntry
	for rows.Next() {
		var e domain.FollowRequestEntry
		var st string
		if err := rows.Scan(&e.RequestID, &e.RequesterID, &e.Username, &e.DisplayName, &e.AvatarURL, &st, &e.RequestedAt); err != nil {
			return nil, err
		}
		e.Status = domain.FollowRequestStatus(st)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *followRequestsRepo) CountRequestsForTarget(ctx context.Context, targetID string, status domain.FollowRequestStatus) (int, error) {
	query := `SELECT COUNT(1) FROM follow_requests WHERE target_id = ?`
	args := []any{targetID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}

	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

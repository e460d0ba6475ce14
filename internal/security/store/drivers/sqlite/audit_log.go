package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hearthsocial/hearth/internal/security/domain"
)

type auditLogRepo struct {
	db dbtx
}

func (r *auditLogRepo) CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error {
	metadata := "{}"
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return err
		}
		metadata = string(raw)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, actor_id, event_type, success, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.ActorID, e.EventType, e.Success, metadata, e.CreatedAt,
	)
	return err
}

func (r *auditLogRepo) ListAuditEntries(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, actor_id, event_type, success, metadata, created_at
		FROM audit_log
		WHERE actor_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		actorID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var metadata string
		if err := rows.Scan(&e.ID, &e.ActorID, &e.EventType, &e.Success, &metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		if metadata != "" && metadata != "{}" {
			if err := json.Unmarshal([]byte(metadata), &e.Metadata); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *auditLogRepo) DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_log WHERE created_at < ?`, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

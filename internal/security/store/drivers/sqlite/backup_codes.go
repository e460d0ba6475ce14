package sqlite

import (
	"context"
	"time"

	"github.com/hearthsocial/hearth/internal/security/domain"
)

type backupCodesRepo struct {
	db dbtx
}

func (r *backupCodesRepo) CreateBackupCode(ctx context.Context, c domain.BackupCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO backup_codes (id, account_id, code_hash, used, used_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.AccountID, c.CodeHash, c.Used, mapOptionalTime(c.UsedAt), c.CreatedAt,
	)
	return mapConflict(err)
}

// ConsumeBackupCode is the one-statement check-and-set that prevents a code
// being spent twice: the WHERE clause matches only an unused code, and the
// row count tells us whether this call was the one that flipped it.
func (r *backupCodesRepo) ConsumeBackupCode(ctx context.Context, accountID, codeHash string, usedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE backup_codes
		SET used = 1, used_at = ?
		WHERE account_id = ? AND code_hash = ? AND used = 0`,
		usedAt, accountID, codeHash,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *backupCodesRepo) DeleteAllBackupCodes(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE account_id = ?`, accountID,
	)
	return err
}

func (r *backupCodesRepo) CountUnusedBackupCodes(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM backup_codes WHERE account_id = ? AND used = 0`,
		accountID,
	).Scan(&count)
	return count, err
}

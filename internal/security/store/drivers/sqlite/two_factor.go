package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
)

type twoFactorRepo struct {
	db dbtx
}

func (r *twoFactorRepo) GetTwoFactorState(ctx context.Context, accountID string) (domain.TwoFactorState, error) {
	var st domain.TwoFactorState
	var enabledAt, lastUsedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT account_id, enabled, encrypted_secret, enabled_at, last_used_at
		FROM two_factor WHERE account_id = ?`,
		accountID,
	).Scan(&st.AccountID, &st.Enabled, &st.EncryptedSecret, &enabledAt, &lastUsedAt)
	if err != nil {
		return domain.TwoFactorState{}, mapNotFound(err)
	}
	st.EnabledAt = mapNullTimePtr(enabledAt)
	st.LastUsedAt = mapNullTimePtr(lastUsedAt)
	return st, nil
}

// EnableTwoFactor is conditional: the upsert only lands while the row is
// absent or disabled, so of two racing setup completions exactly one wins.
func (r *twoFactorRepo) EnableTwoFactor(ctx context.Context, accountID string, encryptedSecret []byte, enabledAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO two_factor (account_id, enabled, encrypted_secret, enabled_at, last_used_at)
		VALUES (?, 1, ?, ?, NULL)
		ON CONFLICT (account_id) DO UPDATE SET
			enabled = 1,
			encrypted_secret = excluded.encrypted_secret,
			enabled_at = excluded.enabled_at,
			last_used_at = NULL
		WHERE two_factor.enabled = 0`,
		accountID, encryptedSecret, enabledAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

// DisableTwoFactor drops the row, taking the encrypted secret with it.
func (r *twoFactorRepo) DisableTwoFactor(ctx context.Context, accountID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM two_factor WHERE account_id = ?`, accountID,
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

func (r *twoFactorRepo) TouchLastUsed(ctx context.Context, accountID string, usedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE two_factor SET last_used_at = ? WHERE account_id = ?`,
		usedAt, accountID,
	)
	return err
}

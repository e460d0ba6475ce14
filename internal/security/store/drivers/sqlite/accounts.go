package sqlite

import (
	"context"
	"strings"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, username, display_name, avatar_url, password_hash,
	is_private, allow_follow_requests, show_online_status, allow_direct_messages,
	created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (
			id, username, display_name, avatar_url, password_hash,
			is_private, allow_follow_requests, show_online_status, allow_direct_messages,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.DisplayName, a.AvatarURL, a.PasswordHash,
		a.Privacy.IsPrivate, a.Privacy.AllowFollowRequests, a.Privacy.ShowOnlineStatus,
		string(a.Privacy.AllowDirectMessages), a.CreatedAt, a.UpdatedAt,
	)
	return mapConflict(err)
}

// UpdatePrivacy builds one UPDATE from the set patch fields so a partial
// change never rewrites settings another request just changed.
func (r *accountsRepo) UpdatePrivacy(ctx context.Context, accountID string, patch domain.PrivacyPatch) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if patch.IsPrivate != nil {
		sets = append(sets, "is_private = ?")
		args = append(args, *patch.IsPrivate)
	}
	if patch.AllowFollowRequests != nil {
		sets = append(sets, "allow_follow_requests = ?")
		args = append(args, *patch.AllowFollowRequests)
	}
	if patch.ShowOnlineStatus != nil {
		sets = append(sets, "show_online_status = ?")
		args = append(args, *patch.ShowOnlineStatus)
	}
	if patch.AllowDirectMessages != nil {
		sets = append(sets, "allow_direct_messages = ?")
		args = append(args, string(*patch.AllowDirectMessages))
	}
	if len(sets) == 0 {
		// Nothing to change; still confirm the account exists.
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE id = ?`, accountID).Scan(&one)
		return mapNotFound(err)
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, accountID)

	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var a domain.Account
	var dmPolicy string
	err := row.Scan(
		&a.ID, &a.Username, &a.DisplayName, &a.AvatarURL, &a.PasswordHash,
		&a.Privacy.IsPrivate, &a.Privacy.AllowFollowRequests, &a.Privacy.ShowOnlineStatus,
		&dmPolicy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.Privacy.AllowDirectMessages = domain.DMPolicy(dmPolicy)
	return a, nil
}

package sqlite

import (
	"context"
	"database/sql"

	"github.com/hearthsocial/hearth/internal/security/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open; caller commits or rolls back

// Ping is a no-op inside a transaction; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

// Transactions do not nest; SAVEPOINT emulation is possible but nothing
// needs it yet.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts             { return &accountsRepo{db: t.tx} }
func (t *txStore) Blocks() store.Blocks                 { return &blocksRepo{db: t.tx} }
func (t *txStore) Follows() store.Follows               { return &followsRepo{db: t.tx} }
func (t *txStore) FollowRequests() store.FollowRequests { return &followRequestsRepo{db: t.tx} }
func (t *txStore) TwoFactor() store.TwoFactor           { return &twoFactorRepo{db: t.tx} }
func (t *txStore) BackupCodes() store.BackupCodes       { return &backupCodesRepo{db: t.tx} }
func (t *txStore) AuditLog() store.AuditLog             { return &auditLogRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts

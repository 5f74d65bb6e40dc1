package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
)

type txStore struct {
	tx *sql.Tx
	q  *Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx, q: newQueries(tx)}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error               { return nil }
func (t *txStore) Ping(context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error     { return nil }

// Nested transactions aren't supported.
func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(context.Context, func(store.Tx) error) error { return sql.ErrTxDone }

func (t *txStore) InviteCodes() store.InviteCodes { return &inviteCodesRepo{q: t.q} }
func (t *txStore) Sessions() store.Sessions       { return &sessionsRepo{q: t.q} }
func (t *txStore) Watchlists() store.Watchlists   { return &watchlistsRepo{q: t.q} }
func (t *txStore) SigningKeys() store.SigningKeys { return &signingKeysRepo{q: t.q} }

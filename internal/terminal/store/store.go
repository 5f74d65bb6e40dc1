package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are reached
// through methods so a Tx-scoped Store can hand out the same repos bound to
// the transaction.
type Store interface {
	InviteCodes() InviteCodes
	Sessions() Sessions
	Watchlists() Watchlists
	SigningKeys() SigningKeys

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type InviteCodes interface {
	// CreateInviteCode returns ErrAlreadyExists when the code is taken.
	CreateInviteCode(ctx context.Context, c domain.InviteCode) error

	GetInviteCode(ctx context.Context, code string) (domain.InviteCode, error)

	// ListInviteCodes returns every code, newest first.
	ListInviteCodes(ctx context.Context) ([]domain.InviteCode, error)

	CountInviteCodes(ctx context.Context) (int, error)

	// ClaimInviteCode binds an unused code to identity. It reports false
	// when the code was already used (or no longer exists).
	ClaimInviteCode(ctx context.Context, code, identity string) (bool, error)

	// BindInviteCode force-binds the code regardless of prior state.
	BindInviteCode(ctx context.Context, code, identity string) error

	// UnbindInviteCode returns the code to the unused state.
	UnbindInviteCode(ctx context.Context, code string) error

	// DeleteInviteCode removes the code; deleting a missing code is not an error.
	DeleteInviteCode(ctx context.Context, code string) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSession(ctx context.Context, id string) (domain.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions whose expiry is at or before now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Watchlists interface {
	// AddWatchlistItem is a no-op when the token is already present.
	AddWatchlistItem(ctx context.Context, identity string, t domain.Token, addedAt time.Time) (bool, error)

	// RemoveWatchlistItem reports whether a row was removed.
	RemoveWatchlistItem(ctx context.Context, identity, tokenID string) (bool, error)

	// ListWatchlist returns tokens in the order they were added.
	ListWatchlist(ctx context.Context, identity string) ([]domain.Token, error)

	WatchlistContains(ctx context.Context, identity, tokenID string) (bool, error)
}

type SigningKeys interface {
	ListSigningKeys(ctx context.Context) ([]domain.SigningKey, error)
	CreateSigningKey(ctx context.Context, k domain.SigningKey) error
}

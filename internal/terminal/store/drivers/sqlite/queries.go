package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the hand-written SQL used by the repositories.
type Queries struct {
	db DBTX
}

func newQueries(db DBTX) *Queries { return &Queries{db: db} }

type inviteCodeRow struct {
	Code         string
	CreatedAt    time.Time
	DurationDays sql.NullInt64
	ExpiresAt    sql.NullTime
	IsUsed       bool
	UsedBy       sql.NullString
	ManualBound  bool
}

const inviteCodeColumns = `code, created_at, duration_days, expires_at, is_used, used_by, manual_bound`

func scanInviteCode(sc interface{ Scan(...any) error }) (inviteCodeRow, error) {
	var r inviteCodeRow
	err := sc.Scan(&r.Code, &r.CreatedAt, &r.DurationDays, &r.ExpiresAt, &r.IsUsed, &r.UsedBy, &r.ManualBound)
	return r, err
}

const insertInviteCode = `
INSERT INTO invite_codes (` + inviteCodeColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (code) DO NOTHING`

func (q *Queries) InsertInviteCode(ctx context.Context, r inviteCodeRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertInviteCode,
		r.Code, r.CreatedAt, r.DurationDays, r.ExpiresAt, r.IsUsed, r.UsedBy, r.ManualBound)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getInviteCode = `SELECT ` + inviteCodeColumns + ` FROM invite_codes WHERE code = ?`

func (q *Queries) GetInviteCode(ctx context.Context, code string) (inviteCodeRow, error) {
	return scanInviteCode(q.db.QueryRowContext(ctx, getInviteCode, code))
}

const listInviteCodes = `SELECT ` + inviteCodeColumns + ` FROM invite_codes ORDER BY created_at DESC, rowid DESC`

func (q *Queries) ListInviteCodes(ctx context.Context) ([]inviteCodeRow, error) {
	rows, err := q.db.QueryContext(ctx, listInviteCodes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []inviteCodeRow
	for rows.Next() {
		r, err := scanInviteCode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Queries) CountInviteCodes(ctx context.Context) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invite_codes`).Scan(&n)
	return n, err
}

const claimInviteCode = `UPDATE invite_codes SET is_used = 1, used_by = ? WHERE code = ? AND is_used = 0`

func (q *Queries) ClaimInviteCode(ctx context.Context, code, identity string) (int64, error) {
	res, err := q.db.ExecContext(ctx, claimInviteCode, identity, code)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const bindInviteCode = `UPDATE invite_codes SET is_used = 1, used_by = ?, manual_bound = 1 WHERE code = ?`

func (q *Queries) BindInviteCode(ctx context.Context, code, identity string) (int64, error) {
	res, err := q.db.ExecContext(ctx, bindInviteCode, identity, code)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const unbindInviteCode = `UPDATE invite_codes SET is_used = 0, used_by = NULL, manual_bound = 0 WHERE code = ?`

func (q *Queries) UnbindInviteCode(ctx context.Context, code string) (int64, error) {
	res, err := q.db.ExecContext(ctx, unbindInviteCode, code)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteInviteCode(ctx context.Context, code string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM invite_codes WHERE code = ?`, code)
	return err
}

type sessionRow struct {
	ID         string
	Identity   string
	IsAdmin    bool
	ExpiryDate time.Time
	Code       sql.NullString
	CreatedAt  time.Time
}

const insertSession = `
INSERT INTO sessions (id, identity, is_admin, expiry_date, code, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertSession(ctx context.Context, r sessionRow) error {
	_, err := q.db.ExecContext(ctx, insertSession, r.ID, r.Identity, r.IsAdmin, r.ExpiryDate, r.Code, r.CreatedAt)
	return err
}

const getSession = `SELECT id, identity, is_admin, expiry_date, code, created_at FROM sessions WHERE id = ?`

func (q *Queries) GetSession(ctx context.Context, id string) (sessionRow, error) {
	var r sessionRow
	err := q.db.QueryRowContext(ctx, getSession, id).
		Scan(&r.ID, &r.Identity, &r.IsAdmin, &r.ExpiryDate, &r.Code, &r.CreatedAt)
	return r, err
}

func (q *Queries) DeleteSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (q *Queries) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE expiry_date <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const insertWatchlistItem = `
INSERT INTO watchlist_items (identity, token_id, token_json, added_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (identity, token_id) DO NOTHING`

func (q *Queries) InsertWatchlistItem(ctx context.Context, identity, tokenID, tokenJSON string, addedAt time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertWatchlistItem, identity, tokenID, tokenJSON, addedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteWatchlistItem(ctx context.Context, identity, tokenID string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM watchlist_items WHERE identity = ? AND token_id = ?`, identity, tokenID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listWatchlist = `SELECT token_json FROM watchlist_items WHERE identity = ? ORDER BY added_at ASC, rowid ASC`

func (q *Queries) ListWatchlistJSON(ctx context.Context, identity string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listWatchlist, identity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (q *Queries) WatchlistContains(ctx context.Context, identity, tokenID string) (bool, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM watchlist_items WHERE identity = ? AND token_id = ?`, identity, tokenID).Scan(&n)
	return n > 0, err
}

func (q *Queries) ListSigningKeys(ctx context.Context) ([]signingKeyRow, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT kid, private_key_pem, created_at FROM signing_keys ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []signingKeyRow
	for rows.Next() {
		var r signingKeyRow
		if err := rows.Scan(&r.Kid, &r.PrivateKeyPEM, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type signingKeyRow struct {
	Kid           string
	PrivateKeyPEM []byte
	CreatedAt     time.Time
}

func (q *Queries) InsertSigningKey(ctx context.Context, r signingKeyRow) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO signing_keys (kid, private_key_pem, created_at) VALUES (?, ?, ?)`,
		r.Kid, r.PrivateKeyPEM, r.CreatedAt)
	return err
}

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "terminal.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestInviteCodes(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	repo := s.InviteCodes()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	seven := 7
	exp := created.Add(7 * 24 * time.Hour)

	require.NoError(t, repo.CreateInviteCode(ctx, domain.InviteCode{Code: "GEM-LIFE", CreatedAt: created}))
	require.NoError(t, repo.CreateInviteCode(ctx, domain.InviteCode{
		Code: "GEM-WEEK", CreatedAt: created.Add(time.Minute), DurationDays: &seven, ExpiresAt: &exp,
	}))

	t.Run("duplicate code", func(t *testing.T) {
		err := repo.CreateInviteCode(ctx, domain.InviteCode{Code: "GEM-LIFE", CreatedAt: created})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("get maps optional fields", func(t *testing.T) {
		life, err := repo.GetInviteCode(ctx, "GEM-LIFE")
		require.NoError(t, err)
		require.Nil(t, life.ExpiresAt)
		require.Nil(t, life.DurationDays)
		require.False(t, life.IsUsed)

		week, err := repo.GetInviteCode(ctx, "GEM-WEEK")
		require.NoError(t, err)
		require.NotNil(t, week.ExpiresAt)
		require.True(t, exp.Equal(*week.ExpiresAt))
		require.Equal(t, 7, *week.DurationDays)

		_, err = repo.GetInviteCode(ctx, "GEM-NOPE")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		codes, err := repo.ListInviteCodes(ctx)
		require.NoError(t, err)
		require.Len(t, codes, 2)
		require.Equal(t, "GEM-WEEK", codes[0].Code)

		n, err := repo.CountInviteCodes(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})

	t.Run("claim only once", func(t *testing.T) {
		ok, err := repo.ClaimInviteCode(ctx, "GEM-LIFE", "a@x.io")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.ClaimInviteCode(ctx, "GEM-LIFE", "b@x.io")
		require.NoError(t, err)
		require.False(t, ok)

		got, err := repo.GetInviteCode(ctx, "GEM-LIFE")
		require.NoError(t, err)
		require.True(t, got.IsUsed)
		require.Equal(t, "a@x.io", got.UsedBy)
		require.False(t, got.ManualBound)
	})

	t.Run("bind overrides", func(t *testing.T) {
		require.NoError(t, repo.BindInviteCode(ctx, "GEM-LIFE", "b@x.io"))
		got, err := repo.GetInviteCode(ctx, "GEM-LIFE")
		require.NoError(t, err)
		require.Equal(t, "b@x.io", got.UsedBy)
		require.True(t, got.ManualBound)

		require.ErrorIs(t, repo.BindInviteCode(ctx, "GEM-NOPE", "b@x.io"), store.ErrNotFound)
	})

	t.Run("unbind resets", func(t *testing.T) {
		require.NoError(t, repo.UnbindInviteCode(ctx, "GEM-LIFE"))
		got, err := repo.GetInviteCode(ctx, "GEM-LIFE")
		require.NoError(t, err)
		require.False(t, got.IsUsed)
		require.Empty(t, got.UsedBy)
		require.False(t, got.ManualBound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.DeleteInviteCode(ctx, "GEM-WEEK"))
		require.NoError(t, repo.DeleteInviteCode(ctx, "GEM-WEEK"))
		_, err := repo.GetInviteCode(ctx, "GEM-WEEK")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	repo := s.Sessions()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateSession(ctx, domain.Session{
		ID: "s-live", Identity: "a@x.io", ExpiryDate: now.Add(time.Hour), Code: "GEM-1", CreatedAt: now,
	}))
	require.NoError(t, repo.CreateSession(ctx, domain.Session{
		ID: "s-dead", Identity: "b@x.io", IsAdmin: true, ExpiryDate: now.Add(-time.Hour), CreatedAt: now,
	}))

	got, err := repo.GetSession(ctx, "s-dead")
	require.NoError(t, err)
	require.True(t, got.IsAdmin)
	require.Empty(t, got.Code)

	n, err := repo.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = repo.GetSession(ctx, "s-dead")
	require.ErrorIs(t, err, store.ErrNotFound)

	live, err := repo.GetSession(ctx, "s-live")
	require.NoError(t, err)
	require.Equal(t, "GEM-1", live.Code)
	require.True(t, now.Add(time.Hour).Equal(live.ExpiryDate))

	require.NoError(t, repo.DeleteSession(ctx, "s-live"))
	_, err = repo.GetSession(ctx, "s-live")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWatchlists(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	repo := s.Watchlists()
	now := time.Now()

	bonk := domain.Token{ID: "pair-1", Symbol: "BONK", Chain: domain.ChainSolana, Price: 0.00002}
	wif := domain.Token{ID: "pair-2", Symbol: "WIF", Chain: domain.ChainSolana}

	added, err := repo.AddWatchlistItem(ctx, "a@x.io", bonk, now)
	require.NoError(t, err)
	require.True(t, added)

	added, err = repo.AddWatchlistItem(ctx, "a@x.io", bonk, now.Add(time.Second))
	require.NoError(t, err)
	require.False(t, added, "second add is a no-op")

	_, err = repo.AddWatchlistItem(ctx, "a@x.io", wif, now.Add(2*time.Second))
	require.NoError(t, err)

	list, err := repo.ListWatchlist(ctx, "a@x.io")
	require.NoError(t, err)
	require.Equal(t, []domain.Token{bonk, wif}, list)

	other, err := repo.ListWatchlist(ctx, "b@x.io")
	require.NoError(t, err)
	require.Empty(t, other)

	removed, err := repo.RemoveWatchlistItem(ctx, "a@x.io", "pair-1")
	require.NoError(t, err)
	require.True(t, removed)

	has, err := repo.WatchlistContains(ctx, "a@x.io", "pair-1")
	require.NoError(t, err)
	require.False(t, has)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	boom := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.InviteCodes().CreateInviteCode(ctx, domain.InviteCode{Code: "GEM-TX", CreatedAt: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.InviteCodes().GetInviteCode(ctx, "GEM-TX")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSigningKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	adapter := store.NewKeyStoreAdapter(s)

	recs, err := adapter.ListSigningKeys(ctx)
	require.NoError(t, err)
	require.Empty(t, recs)

	require.NoError(t, s.SigningKeys().CreateSigningKey(ctx, domain.SigningKey{
		Kid: "k1", PrivateKeyPEM: []byte("pem"), CreatedAt: time.Now(),
	}))

	recs, err = adapter.ListSigningKeys(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "k1", recs[0].Kid)
	require.Equal(t, []byte("pem"), recs[0].PrivateKeyPEM)
}

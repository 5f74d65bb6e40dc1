package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/service"
	"github.com/aussiebroadwan/gemterm/pkg/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminIdentity = "admin@gem.io"
	masterCode    = "ADMIN_MASTER_2025"
)

var masterHash = func() string {
	h, err := cryptox.HashSecret(masterCode)
	if err != nil {
		panic(err)
	}
	return h
}()

func newEntitlements(t *testing.T) (*service.EntitlementService, *testClock) {
	t.Helper()
	clock := newTestClock()
	return &service.EntitlementService{
		Store:          newTestStore(t),
		AdminIdentity:  adminIdentity,
		MasterCodeHash: masterHash,
		Now:            clock.Now,
	}, clock
}

func TestRedeemLifetimeCode(t *testing.T) {
	ctx := context.Background()
	svc, clock := newEntitlements(t)

	_, err := svc.IssueNamedCode(ctx, "GEM-ABC123", domain.LifetimeDuration())
	require.NoError(t, err)

	sess, err := svc.Redeem(ctx, "user@test.com", "GEM-ABC123")
	require.NoError(t, err)
	require.False(t, sess.IsAdmin)
	require.Equal(t, "user@test.com", sess.Identity)
	require.Equal(t, "GEM-ABC123", sess.Code)
	require.False(t, sess.ExpiryDate.IsZero())
	require.Equal(t, clock.Now().Add(365*24*time.Hour), sess.ExpiryDate)
}

func TestRedeemExpiredCode(t *testing.T) {
	ctx := context.Background()
	svc, clock := newEntitlements(t)

	_, err := svc.IssueNamedCode(ctx, "GEM-WEEK", domain.DaysDuration(7))
	require.NoError(t, err)

	clock.Advance(8 * 24 * time.Hour)

	_, err = svc.Redeem(ctx, "user@test.com", "GEM-WEEK")
	require.ErrorIs(t, err, service.ErrCodeExpired)
}

func TestRedeemRules(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown code", func(t *testing.T) {
		svc, _ := newEntitlements(t)
		_, err := svc.Redeem(ctx, "a@x.io", "GEM-NOPE")
		require.ErrorIs(t, err, service.ErrInvalidCode)
	})

	t.Run("identity without @", func(t *testing.T) {
		svc, _ := newEntitlements(t)
		_, err := svc.Redeem(ctx, "not-an-email", "GEM-NOPE")
		require.ErrorIs(t, err, service.ErrMalformedIdentity)
	})

	t.Run("same identity is idempotent, others are refused", func(t *testing.T) {
		svc, _ := newEntitlements(t)
		_, err := svc.IssueNamedCode(ctx, "GEM-ONE", domain.LifetimeDuration())
		require.NoError(t, err)

		_, err = svc.Redeem(ctx, "a@x.io", "GEM-ONE")
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, "  a@x.io  ", " GEM-ONE ")
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, "b@x.io", "GEM-ONE")
		require.ErrorIs(t, err, service.ErrCodeAlreadyBound)

		codes, err := svc.ListCodes(ctx)
		require.NoError(t, err)
		require.Equal(t, "a@x.io", codes[0].UsedBy)
	})

	t.Run("codes are case sensitive", func(t *testing.T) {
		svc, _ := newEntitlements(t)
		_, err := svc.IssueNamedCode(ctx, "GEM-CASE", domain.LifetimeDuration())
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, "a@x.io", "gem-case")
		require.ErrorIs(t, err, service.ErrInvalidCode)
	})

	t.Run("expired wins over bound", func(t *testing.T) {
		svc, clock := newEntitlements(t)
		_, err := svc.IssueNamedCode(ctx, "GEM-DAY", domain.DaysDuration(1))
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, "a@x.io", "GEM-DAY")
		require.NoError(t, err)

		clock.Advance(48 * time.Hour)
		for _, who := range []string{"a@x.io", "b@x.io", adminIdentity} {
			_, err = svc.Redeem(ctx, who, "GEM-DAY")
			require.ErrorIs(t, err, service.ErrCodeExpired, who)
		}
	})

	t.Run("admin master code", func(t *testing.T) {
		svc, _ := newEntitlements(t)
		sess, err := svc.Redeem(ctx, adminIdentity, masterCode)
		require.NoError(t, err)
		require.True(t, sess.IsAdmin)
		require.Empty(t, sess.Code)

		// The master code means nothing for anyone else.
		_, err = svc.Redeem(ctx, "a@x.io", masterCode)
		require.ErrorIs(t, err, service.ErrInvalidCode)
	})

	t.Run("admin with a ledger code never consumes it", func(t *testing.T) {
		svc, _ := newEntitlements(t)
		_, err := svc.IssueNamedCode(ctx, "GEM-ADM", domain.LifetimeDuration())
		require.NoError(t, err)

		sess, err := svc.Redeem(ctx, adminIdentity, "GEM-ADM")
		require.NoError(t, err)
		require.True(t, sess.IsAdmin)

		_, err = svc.Redeem(ctx, "a@x.io", "GEM-ADM")
		require.NoError(t, err, "code must still be free after the admin used it")

		// And the admin may use a code bound to someone else.
		_, err = svc.Redeem(ctx, adminIdentity, "GEM-ADM")
		require.NoError(t, err)
	})
}

func TestSessionExpiryPolicy(t *testing.T) {
	ctx := context.Background()
	svc, clock := newEntitlements(t)
	_, err := svc.IssueNamedCode(ctx, "GEM-30", domain.DaysDuration(30))
	require.NoError(t, err)
	_, err = svc.IssueNamedCode(ctx, "GEM-LIFE", domain.LifetimeDuration())
	require.NoError(t, err)

	sess, err := svc.Redeem(ctx, "a@x.io", "GEM-30")
	require.NoError(t, err)
	require.Equal(t, clock.Now().Add(365*24*time.Hour), sess.ExpiryDate, "fixed policy ignores the code")

	svc.ExpiryPolicy = domain.ExpiryCapToCode
	sess, err = svc.Redeem(ctx, "a@x.io", "GEM-30")
	require.NoError(t, err)
	require.Equal(t, clock.Now().Add(30*24*time.Hour), sess.ExpiryDate)

	sess, err = svc.Redeem(ctx, "b@x.io", "GEM-LIFE")
	require.NoError(t, err)
	require.Equal(t, clock.Now().Add(365*24*time.Hour), sess.ExpiryDate)
}

func TestIssueCode(t *testing.T) {
	ctx := context.Background()
	svc, clock := newEntitlements(t)

	code, err := svc.IssueCode(ctx, domain.DaysDuration(7))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(code.Code, service.CodePrefix))
	require.Len(t, code.Code, len(service.CodePrefix)+10)
	require.Equal(t, 7, *code.DurationDays)
	require.Equal(t, clock.Now().Add(7*24*time.Hour), *code.ExpiresAt)

	life, err := svc.IssueCode(ctx, domain.LifetimeDuration())
	require.NoError(t, err)
	require.Nil(t, life.ExpiresAt)
	require.Nil(t, life.DurationDays)

	_, err = svc.IssueCode(ctx, domain.DaysDuration(0))
	require.ErrorIs(t, err, service.ErrInvalidDuration)

	_, err = svc.IssueCode(ctx, domain.DaysDuration(domain.MaxCodeDays+1))
	require.ErrorIs(t, err, service.ErrInvalidDuration)

	_, err = svc.IssueNamedCode(ctx, life.Code, domain.LifetimeDuration())
	require.ErrorIs(t, err, service.ErrCodeTaken)

	codes, err := svc.ListCodes(ctx)
	require.NoError(t, err)
	require.Len(t, codes, 2)
}

func TestIssueCodeLongestDurationIsRedeemable(t *testing.T) {
	ctx := context.Background()
	svc, clock := newEntitlements(t)

	code, err := svc.IssueCode(ctx, domain.DaysDuration(domain.MaxCodeDays))
	require.NoError(t, err)
	require.NotNil(t, code.ExpiresAt)
	require.True(t, code.ExpiresAt.After(clock.Now()))
	require.Equal(t, clock.Now().AddDate(0, 0, domain.MaxCodeDays), *code.ExpiresAt)

	_, err = svc.Redeem(ctx, "long@test.com", code.Code)
	require.NoError(t, err)
}

func TestRevokeBindUnbind(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEntitlements(t)

	_, err := svc.IssueNamedCode(ctx, "GEM-X", domain.LifetimeDuration())
	require.NoError(t, err)
	_, err = svc.Redeem(ctx, "a@x.io", "GEM-X")
	require.NoError(t, err)

	t.Run("manual bind overwrites the owner", func(t *testing.T) {
		entry, err := svc.ManualBind(ctx, "GEM-X", "b@x.io")
		require.NoError(t, err)
		require.True(t, entry.IsUsed)
		require.True(t, entry.ManualBound)
		require.Equal(t, "b@x.io", entry.UsedBy)

		_, err = svc.Redeem(ctx, "a@x.io", "GEM-X")
		require.ErrorIs(t, err, service.ErrCodeAlreadyBound)
		_, err = svc.Redeem(ctx, "b@x.io", "GEM-X")
		require.NoError(t, err)

		_, err = svc.ManualBind(ctx, "GEM-X", "nobody")
		require.ErrorIs(t, err, service.ErrMalformedIdentity)
		_, err = svc.ManualBind(ctx, "GEM-MISSING", "c@x.io")
		require.ErrorIs(t, err, service.ErrInvalidCode)
	})

	t.Run("unbind frees the code", func(t *testing.T) {
		require.NoError(t, svc.Unbind(ctx, "GEM-X"))
		_, err := svc.Redeem(ctx, "c@x.io", "GEM-X")
		require.NoError(t, err)
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		require.NoError(t, svc.Revoke(ctx, "GEM-X"))
		require.NoError(t, svc.Revoke(ctx, "GEM-X"))
		_, err := svc.Redeem(ctx, "c@x.io", "GEM-X")
		require.ErrorIs(t, err, service.ErrInvalidCode)
	})
}

func TestSeedLedger(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEntitlements(t)

	n, err := svc.SeedLedger(ctx, []string{"AI_GEM_2025", " ", "AI_GEM_2025"})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = svc.SeedLedger(ctx, []string{"OTHER"})
	require.NoError(t, err)
	require.Zero(t, n, "non-empty ledger is never reseeded")

	_, err = svc.Redeem(ctx, "a@x.io", "AI_GEM_2025")
	require.NoError(t, err)
}

func TestConcurrentRedemptionBindsOnce(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEntitlements(t)
	_, err := svc.IssueNamedCode(ctx, "GEM-RACE", domain.LifetimeDuration())
	require.NoError(t, err)

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
	)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			who := string(rune('a'+i)) + "@x.io"
			if _, err := svc.Redeem(ctx, who, "GEM-RACE"); err == nil {
				mu.Lock()
				winners = append(winners, who)
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, service.ErrCodeAlreadyBound)
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, winners, 1)
	codes, err := svc.ListCodes(ctx)
	require.NoError(t, err)
	require.Equal(t, winners[0], codes[0].UsedBy)
}

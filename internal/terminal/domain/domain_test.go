package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/stretchr/testify/require"
)

func TestCodeDurationExpiresAt(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.Nil(t, domain.LifetimeDuration().ExpiresAt(created))

	exp := domain.DaysDuration(7).ExpiresAt(created)
	require.NotNil(t, exp)
	require.Equal(t, created.Add(7*24*time.Hour), *exp)

	far := domain.DaysDuration(200000).ExpiresAt(created)
	require.NotNil(t, far)
	require.True(t, far.After(created), "large durations must not wrap into the past")
	require.Equal(t, 2572, far.Year())
}

func TestInviteCodeExpiredAt(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	code := domain.InviteCode{Code: "GEM-X", ExpiresAt: domain.DaysDuration(1).ExpiresAt(created)}

	require.False(t, code.ExpiredAt(created))
	require.False(t, code.ExpiredAt(*code.ExpiresAt), "expiry instant itself is not yet past")
	require.True(t, code.ExpiredAt(code.ExpiresAt.Add(time.Nanosecond)))

	require.False(t, domain.InviteCode{}.ExpiredAt(created.Add(100*365*24*time.Hour)))
}

func TestEnums(t *testing.T) {
	require.True(t, domain.ChainBase.Supported())
	require.False(t, domain.Chain("bsc").Supported())

	require.True(t, domain.RiskExtreme.Valid())
	require.False(t, domain.RiskLevel("low").Valid())

	require.True(t, domain.ViewMainstreamDetail.Valid())
	require.False(t, domain.View("home").Valid())
}

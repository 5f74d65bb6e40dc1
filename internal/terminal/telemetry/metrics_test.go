package telemetry_test

import (
	"errors"
	"testing"

	"github.com/aussiebroadwan/gemterm/internal/terminal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := telemetry.New(prometheus.NewRegistry())

	m.Redemption("granted")
	m.Redemption("granted")
	m.ProviderCall("dexscreener", "search", 0.1, nil)
	m.ProviderCall("dexscreener", "search", 0.1, errors.New("boom"))
	m.RefreshCompletion("search", "superseded")
	m.CoordinatorOpened()
	m.CoordinatorOpened()
	m.CoordinatorClosed()

	require.Equal(t, 2.0, testutil.ToFloat64(m.Redemptions.WithLabelValues("granted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("dexscreener", "search", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RefreshCompletions.WithLabelValues("search", "superseded")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Coordinators))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *telemetry.Metrics
	require.NotPanics(t, func() {
		m.Redemption("x")
		m.ProviderCall("p", "op", 1, nil)
		m.RefreshCompletion("poll", "applied")
		m.CoordinatorOpened()
		m.CoordinatorClosed()
	})
}

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the terminal's prometheus collectors. A nil *Metrics is
// valid and records nothing, so tests can skip wiring a registry.
type Metrics struct {
	Redemptions        *prometheus.CounterVec
	ProviderRequests   *prometheus.CounterVec
	ProviderLatency    *prometheus.HistogramVec
	RefreshCompletions *prometheus.CounterVec
	Coordinators       prometheus.Gauge
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gemterm",
			Name:      "redemptions_total",
			Help:      "Invite code redemptions by outcome.",
		}, []string{"outcome"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gemterm",
			Name:      "provider_requests_total",
			Help:      "Upstream provider calls by provider, operation and result.",
		}, []string{"provider", "op", "result"}),
		ProviderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gemterm",
			Name:      "provider_request_seconds",
			Help:      "Upstream provider call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "op"}),
		RefreshCompletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gemterm",
			Name:      "refresh_completions_total",
			Help:      "Refresh coordinator completions by category and outcome (applied, superseded).",
		}, []string{"category", "outcome"}),
		Coordinators: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gemterm",
			Name:      "refresh_coordinators",
			Help:      "Live per-session refresh coordinators.",
		}),
	}
	reg.MustRegister(m.Redemptions, m.ProviderRequests, m.ProviderLatency, m.RefreshCompletions, m.Coordinators)
	return m
}

func (m *Metrics) Redemption(outcome string) {
	if m == nil {
		return
	}
	m.Redemptions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ProviderCall(provider, op string, seconds float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ProviderRequests.WithLabelValues(provider, op, result).Inc()
	m.ProviderLatency.WithLabelValues(provider, op).Observe(seconds)
}

func (m *Metrics) RefreshCompletion(category, outcome string) {
	if m == nil {
		return
	}
	m.RefreshCompletions.WithLabelValues(category, outcome).Inc()
}

func (m *Metrics) CoordinatorOpened() {
	if m != nil {
		m.Coordinators.Inc()
	}
}

func (m *Metrics) CoordinatorClosed() {
	if m != nil {
		m.Coordinators.Dec()
	}
}

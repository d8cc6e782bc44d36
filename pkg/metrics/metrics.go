package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// UpstreamRequestsTotal counts outbound requests by target service and
	// outcome ("ok" or "error").
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_dashboard_upstream_requests_total",
			Help: "Outbound requests to upstream services by target and outcome.",
		},
		[]string{"target", "outcome"},
	)

	// MarketProviderGauge reports the active market provider per token:
	// 2=heliswap, 1=customAmm, 0=mock.
	MarketProviderGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "token_dashboard_market_provider",
			Help: "Active market data provider per token (2=heliswap, 1=customAmm, 0=mock).",
		},
		[]string{"token"},
	)

	// PollTicksTotal counts refresh loop ticks by kind ("market" or
	// "analytics") and outcome ("ok", "skipped", "error").
	PollTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_dashboard_poll_ticks_total",
			Help: "Dashboard refresh ticks by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	// TradesTotal counts trade submissions by direction and outcome.
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_dashboard_trades_total",
			Help: "Trade submissions by direction and outcome.",
		},
		[]string{"direction", "outcome"},
	)

	// QuoteLatencySeconds observes the latency of price estimate requests.
	QuoteLatencySeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "token_dashboard_quote_latency_seconds",
			Help:    "Latency of trade price estimate requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup, before the first request is served.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		MarketProviderGauge,
		PollTicksTotal,
		TradesTotal,
		QuoteLatencySeconds,
	)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BotMetrics holds the bot's collectors. A nil *BotMetrics is valid and
// records nothing.
type BotMetrics struct {
	CommandsTotal       *prometheus.CounterVec
	CommandDuration     *prometheus.HistogramVec
	CacheLookupsTotal   *prometheus.CounterVec
	OriginRequestsTotal *prometheus.CounterVec
}

func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	factory := promauto.With(reg)
	return &BotMetrics{
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bot_commands_total",
				Help: "Handled bot commands by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bot_command_duration_seconds",
				Help:    "Time spent rendering a command response",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"command"},
		),
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rates_cache_lookups_total",
				Help: "Rate cache lookups by method and result (hit, miss, error)",
			},
			[]string{"method", "result"},
		),
		OriginRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rates_origin_requests_total",
				Help: "Outbound requests to the rates API by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
	}
}

func (m *BotMetrics) ObserveCommand(command, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(seconds)
}

func (m *BotMetrics) CacheLookup(method, result string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(method, result).Inc()
}

func (m *BotMetrics) OriginRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.OriginRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

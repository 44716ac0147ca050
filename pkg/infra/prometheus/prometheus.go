package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	FlagOutcomeRecorded  = "recorded"
	FlagOutcomeDuplicate = "duplicate"
	FlagOutcomeError     = "error"
)

var (
	// Latency buckets in milliseconds, LLM calls sit in the upper half.
	latencyBuckets = []float64{
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RiskClassificationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safechat_risk_classifications_total",
			Help: "User messages classified, by risk level",
		},
		[]string{"level"},
	)

	ModerationActionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safechat_moderation_actions_total",
			Help: "Guardrail decisions on AI responses, by action",
		},
		[]string{"action"},
	)

	ProviderRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safechat_provider_requests_total",
			Help: "Provider attempts, by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderFallbacksTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "safechat_provider_fallbacks_total",
			Help: "Requests that needed the fallback provider",
		},
	)

	ProviderLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "safechat_provider_latency_ms",
			Help:    "Provider latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"provider"},
	)

	HTTPRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safechat_http_requests_total",
			Help: "HTTP requests, by method, route and status class",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "safechat_http_request_latency_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route"},
	)

	CrisisFlagsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safechat_crisis_flags_total",
			Help: "Crisis flag persistence attempts, by outcome",
		},
		[]string{"outcome"},
	)
)

type MetricsConfig struct {
	EnableProcess bool // process collector (cpu, memory, fds)
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{EnableProcess: true}
}

var Config MetricsConfig

func Initialize(cfg MetricsConfig) {
	Config = cfg
	if cfg.EnableProcess {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

func Gatherer() prometheus.Gatherer {
	return registry
}

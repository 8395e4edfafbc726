package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Routing and charge instrumentation. Registered on the default registry
// and exposed by the /metrics endpoint in cmd/server.
var (
	RoutingDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payrouter",
		Subsystem: "routing",
		Name:      "decisions_total",
		Help:      "Routing decisions by strategy and chosen provider.",
	}, []string{"strategy", "provider"})

	StrategyFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payrouter",
		Subsystem: "routing",
		Name:      "strategy_fallbacks_total",
		Help:      "Circuit-breaker activations by failing strategy.",
	}, []string{"strategy"})

	PrecalcHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payrouter",
		Subsystem: "routing",
		Name:      "precalc_hits_total",
		Help:      "Charges that adopted a pre-calculated route.",
	})

	ChargeResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payrouter",
		Subsystem: "charges",
		Name:      "results_total",
		Help:      "Completed charges by provider and final status.",
	}, []string{"provider", "status"})

	ChargeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "payrouter",
		Subsystem: "charges",
		Name:      "processor_latency_seconds",
		Help:      "Processor adapter round-trip latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})

	FeedbackDrained = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payrouter",
		Subsystem: "feedback",
		Name:      "records_drained_total",
		Help:      "Feedback records folded into the intelligence repository.",
	})
)

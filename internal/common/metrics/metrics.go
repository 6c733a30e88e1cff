// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
	OutcomeAbsent  = "absent"
)

var (
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idea_llm_requests_total",
			Help: "Total number of requests sent to the completion endpoint",
		},
		[]string{"operation", "outcome"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "idea_llm_request_duration_seconds",
			Help:    "Duration of completion endpoint requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"operation"},
	)

	CredentialOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idea_credential_operations_total",
			Help: "Total number of credential store operations",
		},
		[]string{"operation", "outcome"},
	)

	IdeasGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idea_generations_total",
			Help: "Total number of idea generation attempts by outcome",
		},
		[]string{"outcome"},
	)
)

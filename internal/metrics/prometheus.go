// Package metrics exposes Prometheus counters for access decisions and the
// vacation lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Total number of authorization chain decisions",
		},
		[]string{"chain", "result", "code"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacation_validation_failures_total",
			Help: "Total number of vacation validation rule failures",
		},
		[]string{"code"},
	)

	VacationDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacation_decisions_total",
			Help: "Total number of approved or rejected vacation requests",
		},
		[]string{"status"},
	)
)

// RecordAuthzDecision records one chain run. result is granted, denied or error.
func RecordAuthzDecision(chain, result, code string) {
	AuthzDecisionsTotal.WithLabelValues(chain, result, code).Inc()
}

func RecordValidationFailure(code string) {
	ValidationFailuresTotal.WithLabelValues(code).Inc()
}

func RecordVacationDecision(status string) {
	VacationDecisionsTotal.WithLabelValues(status).Inc()
}

// Package metrics exposes Prometheus counters for the core's update
// operations, the same shape libs/economic/metrics.go gives
// payment-channel operations: a CounterVec keyed by operation and
// result, plus a latency-free "was it an error, and which kind" split
// since the core itself never measures wall-clock duration, leaving
// timing decisions to the host.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/breez/paychan/chanerrors"
)

var (
	// operationsTotal counts every observed core call by operation name
	// and outcome ("ok" or a chanerrors.Kind string).
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paychan_operations_total",
			Help: "Total core operations by name and outcome.",
		},
		[]string{"operation", "result"},
	)

	// ledgerFailuresTotal counts failures attributed to the downstream
	// store or transfer subsystem, including withdrawal rollbacks that
	// surface as LedgerFailure.
	ledgerFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paychan_ledger_failures_total",
			Help: "Operations that failed with LedgerFailure, by operation.",
		},
		[]string{"operation"},
	)
)

// ObserveOperation records the outcome of a single core call. A nil
// err records "ok"; otherwise the chanerrors.Kind is used as the
// result label so dashboards can break down failures by taxonomy
// without parsing message strings.
func ObserveOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = resultLabel(err)
		if result == chanerrors.LedgerFailure.String() {
			ledgerFailuresTotal.WithLabelValues(operation).Inc()
		}
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}

func resultLabel(err error) string {
	ce, ok := err.(*chanerrors.Error)
	if !ok {
		return "unknown"
	}
	return ce.Kind.String()
}

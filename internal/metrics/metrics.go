// Package metrics defines the Prometheus collectors owned by the ledger engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "splitledger"

// Metrics holds the ledger's counters.
type Metrics struct {
	ExpensesAdded    *prometheus.CounterVec // by category
	ExpensesRejected *prometheus.CounterVec // by error class
	SplitToggles     *prometheus.CounterVec // by action: settle, unsettle
	BalanceQueries   *prometheus.CounterVec // by kind: group, friend, pair
}

// New creates the ledger counters and registers them on reg.
// A nil reg leaves the counters unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExpensesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_added_total",
			Help:      "Expenses accepted into the ledger.",
		}, []string{"category"}),
		ExpensesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_rejected_total",
			Help:      "Expenses refused by validation or lookup.",
		}, []string{"reason"}),
		SplitToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_toggles_total",
			Help:      "Split settlement state changes.",
		}, []string{"action"}),
		BalanceQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_queries_total",
			Help:      "Balance computations served.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.ExpensesAdded, m.ExpensesRejected, m.SplitToggles, m.BalanceQueries)
	}
	return m
}

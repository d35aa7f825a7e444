package catalog

import "github.com/prometheus/client_golang/prometheus"

var (
	catalogReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cleanos",
			Subsystem: "catalog",
			Name:      "reads_total",
			Help:      "Catalog reads by outcome (hit, miss)",
		},
		[]string{"outcome"},
	)

	catalogFetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cleanos",
			Subsystem: "catalog",
			Name:      "fetch_failures_total",
			Help:      "Catalog fetches that left the cache unchanged",
		},
		[]string{"reason"},
	)

	catalogDiscarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cleanos",
			Subsystem: "catalog",
			Name:      "superseded_results_total",
			Help:      "Fetch results dropped because a newer fetch already landed",
		},
	)

	catalogModels = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cleanos",
			Subsystem: "catalog",
			Name:      "models",
			Help:      "Number of models in the cached catalog",
		},
	)
)

func init() {
	prometheus.MustRegister(catalogReads, catalogFetchFailures, catalogDiscarded, catalogModels)
}

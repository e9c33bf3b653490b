package agent

import (
	"isolation/experiments/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts /choosemove requests.
	//
	// Labels:
	//   - status: "move", "no_move" or "bad_request"
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "isolation",
			Subsystem: "agent",
			Name:      "requests_total",
			Help:      "Total move requests by outcome",
		},
		[]string{"status"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "isolation",
			Subsystem: "agent",
			Name:      "search_duration_seconds",
			Help:      "Time spent choosing a move",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	searchDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "isolation",
			Subsystem: "agent",
			Name:      "search_depth",
			Help:      "Deepest completed search depth per move",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		},
	)

	searchNodesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "isolation",
			Subsystem: "agent",
			Name:      "search_nodes_total",
			Help:      "Total search frames entered",
		},
	)

	searchAbortsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "isolation",
			Subsystem: "agent",
			Name:      "search_aborts_total",
			Help:      "Total searches cut short by the deadline",
		},
	)
)

func recordSearch(metric metrics.SearchMetric) {
	searchDuration.Observe(metric.Duration.Seconds())
	searchDepth.Observe(float64(metric.Depth))
	searchNodesTotal.Add(float64(metric.Nodes))
	if metric.Aborted {
		searchAbortsTotal.Inc()
	}
}

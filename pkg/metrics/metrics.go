// Package metrics exposes Prometheus instrumentation for the graph
// construction and query pipelines. It is never required for
// correctness — callers proceed identically whether or not a metrics
// server ever scrapes these collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EdgesIngested counts the distinct edges each suffix bucket folds
	// into the graph during chunked construction, labeled by suffix bucket.
	EdgesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metagraph_edges_ingested_total",
			Help: "Total number of edges inserted during construction",
		},
		[]string{"suffix_bucket"},
	)

	// ConstructionDuration is the histogram for the wall-clock time of one
	// suffix-bucket construction pass. Nothing in this module records it.
	ConstructionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metagraph_construction_duration_seconds",
			Help:    "Duration of one suffix-bucket construction pass",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"suffix_bucket"},
	)

	// NavigationDuration is the histogram for the latency of BOSS
	// navigation calls (Fwd/Bwd/Traverse/Outgoing), labeled by operation.
	// Nothing in this module records it.
	NavigationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metagraph_navigation_duration_seconds",
			Help:    "Duration of BOSS navigation operations",
			Buckets: []float64{0.0000001, 0.000001, 0.00001, 0.0001, 0.001, 0.01},
		},
		[]string{"op"},
	)

	// AnnotationQueryDuration measures BRWT query latency, labeled by query
	// kind (get, get_row, get_column, slice_rows, slice_columns).
	AnnotationQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metagraph_annotation_query_duration_seconds",
			Help:    "Duration of BRWT annotation queries",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"kind"},
	)

	// GraphNodesTotal tracks the node count of the last STAT graph built or
	// loaded, labeled by graph base path.
	GraphNodesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "metagraph_graph_nodes",
			Help: "Number of nodes in the most recently built or loaded graph",
		},
		[]string{"graph"},
	)

	// BatchesProcessed is the counter for query-graph batches, labeled by
	// outcome. Nothing in this module records it, and the query pipeline
	// does not retry a batch with a smaller size.
	BatchesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metagraph_query_batches_total",
			Help: "Total number of query-graph batches processed",
		},
		[]string{"outcome"},
	)
)

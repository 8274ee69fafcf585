package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dsportfolio_page_renders_total",
			Help: "Total number of page renders",
		},
		[]string{"page", "format"},
	)

	RenderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dsportfolio_render_errors_total",
			Help: "Total number of page renders that failed",
		},
		[]string{"page"},
	)

	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dsportfolio_dataset_loads_total",
			Help: "Remote dataset loads by outcome (ok, cached, network, status, parse)",
		},
		[]string{"outcome"},
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dsportfolio_render_duration_seconds",
			Help:    "Time taken to build a page view",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"page"},
	)

	ModelFitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dsportfolio_model_fit_duration_seconds",
			Help:    "Time taken to fit a model",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
)

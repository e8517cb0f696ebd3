package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IndexLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiva_index_loads_total",
			Help: "The total number of topic index loads",
		},
		[]string{"topic", "status"},
	)

	ContentLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiva_content_loads_total",
			Help: "The total number of full post content loads",
		},
		[]string{"status"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shiva_fetch_duration_seconds",
			Help:    "Duration of remote fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	PageRenders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shiva_page_renders_total",
			Help: "Number of times the list region was re-rendered",
		},
	)

	PostsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shiva_posts_loaded",
			Help: "Number of post summaries held for the current topic",
		},
		[]string{"topic"},
	)

	Diagnostics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiva_diagnostics_total",
			Help: "Total number of non-fatal failures reported",
		},
		[]string{"kind"},
	)

	ContentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiva_content_server_requests_total",
			Help: "Requests served by the content server",
		},
		[]string{"route", "code"},
	)
)

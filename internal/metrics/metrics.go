// Package metrics exposes the frontend's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RenderDuration observes how long page renders take, labeled by page
	// key.
	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "docshore",
		Subsystem: "web",
		Name:      "page_render_duration_seconds",
		Help:      "Time spent rendering a page to HTML.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"page"})

	// FragmentLookups counts fragment cache lookups by result.
	FragmentLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docshore",
		Subsystem: "web",
		Name:      "fragment_cache_lookups_total",
		Help:      "Fragment cache lookups, partitioned by hit or miss.",
	}, []string{"result"})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

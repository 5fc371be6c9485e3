package preview

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics are the preview server's own instruments, registered on a private
// registry the /metrics route exposes.
type metrics struct {
	rebuilds        *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	pageRequests    *prometheus.CounterVec
	pages           prometheus.Gauge
}

func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		rebuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spokedoc_rebuilds_total",
				Help: "Total number of site rebuilds",
			},
			[]string{"status"},
		),
		rebuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spokedoc_rebuild_duration_seconds",
				Help:    "Site rebuild duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		pageRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spokedoc_page_requests_total",
				Help: "Total number of page requests",
			},
			[]string{"status"},
		),
		pages: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spokedoc_site_pages",
				Help: "Number of pages in the current site",
			},
		),
	}
	registry.MustRegister(m.rebuilds, m.rebuildDuration, m.pageRequests, m.pages)
	return m
}

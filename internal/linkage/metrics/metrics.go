// Package metrics holds the Prometheus instruments for the linkage engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all engine metrics. A nil *Metrics is safe to call so tests
// can skip registration.
type Metrics struct {
	ScansTotal       prometheus.Counter
	ScanFailures     prometheus.Counter
	ScanConflicts    prometheus.Counter
	ScanDuration     prometheus.Histogram
	LinkagesFound    *prometheus.CounterVec
	ProfilesAnalyzed prometheus.Gauge
	NetworkDuration  prometheus.Histogram
}

// New creates and registers all engine metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ScansTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crosslink_scans_total",
			Help: "Total number of committed full-corpus scans",
		}),
		ScanFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crosslink_scan_failures_total",
			Help: "Total number of scans aborted by a failure",
		}),
		ScanConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crosslink_scan_conflicts_total",
			Help: "Scan triggers rejected because a scan was already running",
		}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crosslink_scan_duration_seconds",
			Help:    "Wall time of a full scan from trigger to commit",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		LinkagesFound: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crosslink_linkages_found_total",
			Help: "Linkages produced by committed scans, by type",
		}, []string{"type"}),
		ProfilesAnalyzed: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "crosslink_profiles_analyzed",
			Help: "Corpus size of the last committed scan",
		}),
		NetworkDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crosslink_network_query_duration_seconds",
			Help:    "Latency of network graph queries",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

func (m *Metrics) ObserveScan(d time.Duration) {
	if m == nil {
		return
	}
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(d.Seconds())
}

func (m *Metrics) IncScanFailure() {
	if m == nil {
		return
	}
	m.ScanFailures.Inc()
}

func (m *Metrics) IncScanConflict() {
	if m == nil {
		return
	}
	m.ScanConflicts.Inc()
}

func (m *Metrics) RecordLinkages(byType map[string]int, profiles int) {
	if m == nil {
		return
	}
	for t, n := range byType {
		m.LinkagesFound.WithLabelValues(t).Add(float64(n))
	}
	m.ProfilesAnalyzed.Set(float64(profiles))
}

func (m *Metrics) ObserveNetworkQuery(d time.Duration) {
	if m == nil {
		return
	}
	m.NetworkDuration.Observe(d.Seconds())
}

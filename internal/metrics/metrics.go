// Package metrics collects per-run publishing counters and writes them in
// the Prometheus text exposition format.
//
// crosspost runs as a short-lived CI job, so nothing is served over HTTP.
// The counters are written once at the end of a run to a file that a
// node-exporter textfile collector (or a CI artifact step) can pick up.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/paths"
)

const namespace = "crosspost"

// Post results recorded by RecordPost.
const (
	PostEligible   = "eligible"
	PostIneligible = "ineligible"
	PostInvalid    = "invalid"
)

// Metrics holds the collectors for one run.
type Metrics struct {
	registry *prometheus.Registry

	postsTotal      *prometheus.CounterVec
	publishTotal    *prometheus.CounterVec
	publishDuration *prometheus.HistogramVec
	runDuration     prometheus.Gauge
	lastRun         prometheus.Gauge
}

// New creates the collectors and registers them on a private registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		postsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "posts_total",
				Help:      "Posts examined by result (eligible, ineligible, invalid)",
			},
			[]string{"result"},
		),
		publishTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publish_total",
				Help:      "Publish outcomes by platform and status",
			},
			[]string{"platform", "status"},
		),
		publishDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "publish_duration_seconds",
				Help:      "Time taken by a single publish request",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"platform"},
		),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.postsTotal,
		m.publishTotal,
		m.publishDuration,
		m.runDuration,
		m.lastRun,
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering metrics")
		}
	}
	return m, nil
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordPost counts one examined post.
func (m *Metrics) RecordPost(result string) {
	if m == nil {
		return
	}
	m.postsTotal.WithLabelValues(result).Inc()
}

// RecordPublish counts one (post, platform) outcome. A zero duration means
// no request was made and is not observed.
func (m *Metrics) RecordPublish(platform, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.publishTotal.WithLabelValues(platform, status).Inc()
	if d > 0 {
		m.publishDuration.WithLabelValues(platform).Observe(d.Seconds())
	}
}

// ObserveRun records the run's wall time and completion time.
func (m *Metrics) ObserveRun(d time.Duration, finished time.Time) {
	if m == nil {
		return
	}
	m.runDuration.Set(d.Seconds())
	m.lastRun.Set(float64(finished.Unix()))
}

// WriteFile writes every collector to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating metrics directory")
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "writing metrics to %s", path)
	}
	return nil
}

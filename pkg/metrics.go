package bump

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the work done by a run. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	filesProcessed prometheus.Counter
	linesScanned   prometheus.Counter
	versionsBumped *prometheus.CounterVec
	errors         prometheus.Counter
}

// NewMetrics returns Metrics backed by a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		filesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bump_files_processed_total",
			Help: "Number of files scanned for versions.",
		}),
		linesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bump_lines_scanned_total",
			Help: "Number of lines passed through the scanner.",
		}),
		versionsBumped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bump_versions_bumped_total",
			Help: "Number of versions rewritten, by bump level.",
		}, []string{"level"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bump_errors_total",
			Help: "Number of files that failed to process.",
		}),
	}
	m.registry.MustRegister(m.filesProcessed, m.linesScanned, m.versionsBumped, m.errors)
	return m
}

// Registry exposes the registry holding the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(res *Result, level Level, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.errors.Inc()
		return
	}
	m.filesProcessed.Inc()
	m.linesScanned.Add(float64(res.Lines))
	m.versionsBumped.WithLabelValues(level.String()).Add(float64(len(res.Matches)))
}

// WriteTextfile writes the counters to path in the text format read by the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

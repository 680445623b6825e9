package sampler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are labelled by recorder name. A nil *Metrics records nothing.
type Metrics struct {
	SamplesRecorded *prometheus.CounterVec
	SourceErrors    *prometheus.CounterVec
	SnapshotsSaved  *prometheus.CounterVec
	SampleCount     *prometheus.GaugeVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	return &Metrics{
		SamplesRecorded: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "recorder_samples_recorded_total",
				Help: "Total number of samples fed into recorders",
			},
			[]string{"recorder"},
		),
		SourceErrors: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "recorder_source_errors_total",
				Help: "Total number of failed source reads",
			},
			[]string{"recorder"},
		),
		SnapshotsSaved: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "recorder_snapshots_saved_total",
				Help: "Total number of period snapshots written to storage",
			},
			[]string{"recorder"},
		),
		SampleCount: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "recorder_samples",
				Help: "Current number of samples held by a recorder",
			},
			[]string{"recorder"},
		),
	}
}

func (m *Metrics) recorded(name string, count int) {
	if m == nil {
		return
	}

	m.SamplesRecorded.WithLabelValues(name).Inc()
	m.SampleCount.WithLabelValues(name).Set(float64(count))
}

func (m *Metrics) sourceError(name string) {
	if m == nil {
		return
	}

	m.SourceErrors.WithLabelValues(name).Inc()
}

func (m *Metrics) snapshotSaved(name string) {
	if m == nil {
		return
	}

	m.SnapshotsSaved.WithLabelValues(name).Inc()
}

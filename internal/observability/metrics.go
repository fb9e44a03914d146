package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quake_dashboard"

// Update outcomes recorded on UpdatesTotal.
const (
	OutcomeComputed = "computed"
	OutcomeCached   = "cached"
	OutcomeEmpty    = "empty"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Dataset snapshot.
	DatasetEvents  prometheus.Gauge
	DatasetUndated prometheus.Gauge
	DatasetSkipped prometheus.Gauge

	// Figure computation.
	UpdatesTotal       *prometheus.CounterVec // labels: outcome={computed,cached,empty}
	UpdateDuration     prometheus.Histogram
	FilteredEvents     prometheus.Histogram
	FigureCacheEntries prometheus.Gauge

	// Kafka selection pipeline.
	MessagesConsumed        prometheus.Counter
	MessagesProduced        prometheus.Counter
	TransformErrors         prometheus.Counter
	PipelineRunning         prometheus.Gauge
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.DatasetEvents,
		m.DatasetUndated,
		m.DatasetSkipped,
		m.UpdatesTotal,
		m.UpdateDuration,
		m.FilteredEvents,
		m.FigureCacheEntries,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_events",
			Help:      "Events retained in the loaded dataset snapshot.",
		}),
		DatasetUndated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_undated_events",
			Help:      "Retained events whose date could not be parsed.",
		}),
		DatasetSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_skipped_rows",
			Help:      "Dataset rows dropped for unparseable coordinates or magnitude.",
		}),
		UpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Figure updates by outcome.",
		}, []string{"outcome"}),
		UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_duration_seconds",
			Help:      "Time to compute figures for one selection.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		FilteredEvents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filtered_events",
			Help:      "Events matching a computed selection.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		FigureCacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "figure_cache_entries",
			Help:      "Selections currently held in the figure cache.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total selection messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total figure messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total selection messages that could not be processed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the selection pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of selection messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// RecordDataset publishes the snapshot sizes.
func (m *Metrics) RecordDataset(events, undated, skipped int) {
	m.DatasetEvents.Set(float64(events))
	m.DatasetUndated.Set(float64(undated))
	m.DatasetSkipped.Set(float64(skipped))
}

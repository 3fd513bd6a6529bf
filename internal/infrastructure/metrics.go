package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Render outcomes recorded by ObserveRender
const (
	OutcomeWritten = "written"
	OutcomeFailed  = "failed"
)

// Metrics collects per-run pipeline metrics on a private registry.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	rowsLoaded    prometheus.Gauge
	rowsDropped   *prometheus.CounterVec
	renders       *prometheus.CounterVec
	renderSeconds *prometheus.GaugeVec
	layersSkipped *prometheus.CounterVec
}

// NewMetrics creates and registers the pipeline metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gasviz",
			Name:      "rows_loaded",
			Help:      "Observation rows read from the input workbook.",
		}),
		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gasviz",
			Name:      "rows_dropped_total",
			Help:      "Rows discarded by a renderer before aggregation.",
		}, []string{"renderer", "reason"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gasviz",
			Name:      "renders_total",
			Help:      "Renderer runs by outcome.",
		}, []string{"renderer", "outcome"}),
		renderSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gasviz",
			Name:      "render_duration_seconds",
			Help:      "Wall time of the last run of each renderer.",
		}, []string{"renderer"}),
		layersSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gasviz",
			Name:      "heatmap_layers_skipped_total",
			Help:      "Heat-map layers omitted because their price range was degenerate.",
		}, []string{"layer"}),
	}

	m.registry.MustRegister(m.rowsLoaded, m.rowsDropped, m.renders, m.renderSeconds, m.layersSkipped)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// SetRowsLoaded records how many rows were loaded
func (m *Metrics) SetRowsLoaded(n int) {
	if m == nil {
		return
	}
	m.rowsLoaded.Set(float64(n))
}

// AddRowsDropped records rows discarded by a renderer
func (m *Metrics) AddRowsDropped(renderer, reason string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.rowsDropped.WithLabelValues(renderer, reason).Add(float64(n))
}

// ObserveRender records the outcome and duration of one renderer run
func (m *Metrics) ObserveRender(renderer, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(renderer, outcome).Inc()
	m.renderSeconds.WithLabelValues(renderer).Set(elapsed.Seconds())
}

// LayerSkipped records a heat-map layer omitted for a degenerate range
func (m *Metrics) LayerSkipped(layer string) {
	if m == nil {
		return
	}
	m.layersSkipped.WithLabelValues(layer).Inc()
}

// WriteTextfile writes the metrics in Prometheus text format for the
// node_exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

package visualization

import (
	"context"
	"io"
	"log/slog"
	"time"

	"gasviz/internal/exporter"
	"gasviz/internal/infrastructure"
	"gasviz/pkg/contracts/domain"
)

// Renderer names used in logs and metrics
const (
	RendererTimeSeries = "time_series"
	RendererHeatMap    = "heatmap"
	RendererDashboard  = "dashboard"
)

// Renderer writes the artifacts to disk
type Renderer struct {
	writer  *exporter.FileWriter
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewRenderer creates a renderer. metrics may be nil.
func NewRenderer(logger *slog.Logger, metrics *infrastructure.Metrics) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		writer:  exporter.NewFileWriter(logger),
		metrics: metrics,
		logger:  logger,
	}
}

// TimeSeries renders the time-series PNG to path
func (r *Renderer) TimeSeries(ctx context.Context, observations []domain.Observation, path string) {
	start := time.Now()
	chart := BuildTimeSeries(observations)
	r.reportDropped(ctx, RendererTimeSeries, "unparseable_time", chart.Dropped)

	r.logger.InfoContext(ctx, "Rendering time series",
		slog.Int("tags", len(chart.Tags)),
		slog.Int("dates", len(chart.Regular.Dates())))

	r.save(ctx, RendererTimeSeries, path, start, chart.WritePNG)
}

// HeatMap renders the heat-map HTML to path. A malformed Location is returned
// as an error; save failures are not.
func (r *Renderer) HeatMap(ctx context.Context, observations []domain.Observation, path string) error {
	start := time.Now()
	heatMap, err := BuildHeatMap(observations)
	if err != nil {
		r.metrics.ObserveRender(RendererHeatMap, infrastructure.OutcomeFailed, time.Since(start))
		return err
	}
	r.reportDropped(ctx, RendererHeatMap, "missing_price", heatMap.Dropped)

	for _, skipped := range heatMap.Skipped {
		r.logger.WarnContext(ctx, "Price range is degenerate, skipping layer",
			slog.String("layer", skipped.Name),
			slog.Float64("min", skipped.Min),
			slog.Float64("max", skipped.Max),
			slog.Int("stations", skipped.Stations))
		r.metrics.LayerSkipped(skipped.Name)
	}

	r.logger.InfoContext(ctx, "Rendering heat map",
		slog.Int("stations", heatMap.Stations),
		slog.Int("layers", len(heatMap.Layers)),
		slog.Float64("center_lat", heatMap.Center.Latitude),
		slog.Float64("center_lon", heatMap.Center.Longitude))

	r.save(ctx, RendererHeatMap, path, start, heatMap.WriteHTML)
	return nil
}

// Dashboard renders the interactive dashboard HTML to path
func (r *Renderer) Dashboard(ctx context.Context, observations []domain.Observation, path string) {
	start := time.Now()
	dashboard := BuildDashboard(observations)
	r.reportDropped(ctx, RendererDashboard, "unparseable_time", dashboard.Dropped)

	r.logger.InfoContext(ctx, "Rendering dashboard",
		slog.Int("series", len(dashboard.Regular)+len(dashboard.Premium)))

	r.save(ctx, RendererDashboard, path, start, dashboard.WriteHTML)
}

func (r *Renderer) save(ctx context.Context, renderer, path string, start time.Time, write func(io.Writer) error) {
	if err := r.writer.Replace(ctx, path, write); err != nil {
		r.logger.ErrorContext(ctx, "Failed to save output",
			slog.String("renderer", renderer),
			slog.String("file_path", path),
			slog.String("error", err.Error()))
		r.metrics.ObserveRender(renderer, infrastructure.OutcomeFailed, time.Since(start))
		return
	}

	r.logger.InfoContext(ctx, "Saved output",
		slog.String("renderer", renderer),
		slog.String("file_path", path),
		slog.Duration("elapsed", time.Since(start)))
	r.metrics.ObserveRender(renderer, infrastructure.OutcomeWritten, time.Since(start))
}

func (r *Renderer) reportDropped(ctx context.Context, renderer, reason string, n int) {
	if n == 0 {
		return
	}
	r.logger.DebugContext(ctx, "Dropped rows",
		slog.String("renderer", renderer),
		slog.String("reason", reason),
		slog.Int("rows", n))
	r.metrics.AddRowsDropped(renderer, reason, n)
}

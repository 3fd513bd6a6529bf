package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gasviz/internal/config"
	"gasviz/internal/dataprocessing"
	"gasviz/internal/infrastructure"
	"gasviz/internal/preview"
	"gasviz/internal/validation"
	"gasviz/internal/visualization"
)

// Application holds the components of one pipeline run
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *infrastructure.Metrics
	Validator *validation.FileValidator
	Renderer  *visualization.Renderer
	Preview   *preview.Capturer
}

// NewApplication initializes logging and builds the pipeline components
func NewApplication(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	metrics := infrastructure.NewMetrics()
	return &Application{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Validator: validation.NewFileValidator(infrastructure.WithComponent(logger, "validation")),
		Renderer:  visualization.NewRenderer(infrastructure.WithComponent(logger, "visualization"), metrics),
		Preview:   preview.NewCapturer(cfg.Preview, infrastructure.WithComponent(logger, "preview")),
	}, nil
}

// Run executes the pipeline once
func (a *Application) Run(ctx context.Context) error {
	ctx = infrastructure.EnsureRunID(ctx)
	start := time.Now()
	paths := a.Config.Paths

	a.Logger.InfoContext(ctx, "Starting gas price visualization",
		slog.String("version", config.AppVersion),
		slog.String("input_file", paths.InputFile))

	if err := a.Validator.ValidateInputWorkbook(paths.InputFile); err != nil {
		return err
	}
	// renderers report their own save failures
	if err := a.Validator.ValidateOutputs(paths.Outputs()...); err != nil {
		a.Logger.WarnContext(ctx, "Output directories are not all writable", slog.String("error", err.Error()))
	}

	observations, err := dataprocessing.LoadObservations(paths.InputFile)
	if err != nil {
		a.Logger.ErrorContext(ctx, "Failed to load observations", slog.String("error", err.Error()))
		return err
	}
	a.Metrics.SetRowsLoaded(len(observations))
	a.Logger.InfoContext(ctx, "Loaded observations", slog.Int("rows", len(observations)))

	a.Renderer.TimeSeries(ctx, observations, paths.TimeSeriesFile)

	if err := a.Renderer.HeatMap(ctx, observations, paths.HeatMapFile); err != nil {
		a.Logger.ErrorContext(ctx, "Failed to build heat map", slog.String("error", err.Error()))
		return err
	}

	a.Renderer.Dashboard(ctx, observations, paths.DashboardFile)

	a.Preview.CaptureAll(ctx, paths.HeatMapFile, paths.DashboardFile)

	if err := a.Metrics.WriteTextfile(a.Config.Metrics.TextfilePath); err != nil {
		a.Logger.WarnContext(ctx, "Failed to write metrics", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Visualization complete", slog.Duration("elapsed", time.Since(start)))
	return nil
}

// Run builds an application from cfg, runs it and closes the log file
func Run(ctx context.Context, cfg *config.Config) error {
	application, err := NewApplication(cfg)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	return application.Run(ctx)
}

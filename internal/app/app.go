package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"JSMChanges/internal/config"
	"JSMChanges/internal/domain"
	"JSMChanges/internal/infrastructure/fetcher"
	"JSMChanges/internal/infrastructure/parser"
	"JSMChanges/internal/infrastructure/progress"
	"JSMChanges/internal/infrastructure/report"
	"JSMChanges/internal/infrastructure/scheduler"
	"JSMChanges/internal/infrastructure/telegram"
	"JSMChanges/internal/infrastructure/viewer"
	"JSMChanges/internal/logging"
	"JSMChanges/internal/ports"
	"JSMChanges/internal/render"
	"JSMChanges/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	reporter *usecase.Reporter
}

// Option customises adapters, mostly for tests.
type Option func(*options)

type options struct {
	progress ports.Progress
	viewer   ports.Viewer
}

// WithProgress replaces the console progress indicator.
func WithProgress(p ports.Progress) Option {
	return func(o *options) { o.progress = p }
}

// WithViewer replaces the file viewer.
func WithViewer(v ports.Viewer) Option {
	return func(o *options) { o.viewer = v }
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger, opts ...Option) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	httpFetcher := fetcher.New(cfg.HTTP.Timeout,
		fetcher.WithUserAgent(cfg.HTTP.UserAgent),
		fetcher.WithLogger(baseLogger.With("component", "fetcher")),
	)

	discoverer, err := parser.NewDiscoverer(httpFetcher, cfg.Source, baseLogger.With("component", "discoverer"))
	if err != nil {
		return nil, fmt.Errorf("discoverer: %w", err)
	}
	entryParser, err := parser.NewEntryParser(cfg.Markup, cfg.Source.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("entry parser: %w", err)
	}
	source := parser.NewPageSource(httpFetcher, parser.NewSectionExtractor(cfg.Markup), entryParser,
		baseLogger.With("component", "source"))

	if o.progress == nil {
		o.progress = progress.NewConsole(os.Stderr)
	}
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Discoverer: discoverer,
		Source:     source,
		Progress:   o.progress,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	text := report.NewTextRenderer(cfg.Report.Product)
	registry := render.NewRegistry(
		report.NewHTMLRenderer(cfg.Report.Product),
		report.NewJSONRenderer(),
		report.NewAtomRenderer(cfg.Report.Product),
		text,
	)
	renderer, err := registry.Resolve(cfg.Report.Format)
	if err != nil {
		return nil, err
	}

	if o.viewer == nil {
		o.viewer = viewer.New(cfg.Report.OutputPath, !cfg.Report.NoOpen,
			viewer.WithLogger(baseLogger.With("component", "viewer")))
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		tg, err := telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID,
			telegram.WithTimeout(cfg.HTTP.Timeout))
		if err != nil {
			return nil, err
		}
		notifier = tg
	}

	reporter := usecase.NewReporter(usecase.ReporterDeps{
		Comparer: pipeline,
		Renderer: renderer,
		Viewer:   o.viewer,
		Notifier: notifier,
		Digester: text,
		Logger:   baseLogger.With("component", "reporter"),
	})

	return &Application{cfg: cfg, logger: baseLogger, reporter: reporter}, nil
}

// Run performs a single comparison and delivers the report.
func (a *Application) Run(ctx context.Context) (domain.Report, error) {
	return a.reporter.Run(ctx)
}

// Watch repeats Run on the configured interval until ctx is done.
func (a *Application) Watch(ctx context.Context) error {
	if a.cfg.Scheduler.Interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", a.cfg.Scheduler.Interval)
	}
	driver := scheduler.NewTickerScheduler(a.cfg.Scheduler.Interval)
	jobs := usecase.NewScheduler(driver, a.reporter, a.logger.With("component", "scheduler"))
	if err := jobs.Start(ctx); err != nil {
		return err
	}
	a.logger.Info("watching for weekly changes", "interval", a.cfg.Scheduler.Interval.String())

	<-ctx.Done()
	return jobs.Stop(context.Background())
}

package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

// Comparer produces the week-over-week report.
type Comparer interface {
	Compare(ctx context.Context) (domain.Report, error)
}

// ReporterDeps wires the pipeline to its outputs.
type ReporterDeps struct {
	Comparer Comparer
	Renderer ports.Renderer
	Viewer   ports.Viewer
	Notifier ports.Notifier
	Digester ports.Digester
	Logger   *slog.Logger
}

// Reporter runs one comparison and delivers the rendered result.
type Reporter struct {
	comparer Comparer
	renderer ports.Renderer
	viewer   ports.Viewer
	notifier ports.Notifier
	digester ports.Digester
	logger   *slog.Logger
}

// NewReporter constructs the delivery use case.
func NewReporter(deps ReporterDeps) *Reporter {
	return &Reporter{
		comparer: deps.Comparer,
		renderer: deps.Renderer,
		viewer:   deps.Viewer,
		notifier: deps.Notifier,
		digester: deps.Digester,
		logger:   deps.Logger,
	}
}

// Run compares the two latest weeks, renders the result and hands it to the
// viewer. A failing notifier is logged and does not fail the run.
func (r *Reporter) Run(ctx context.Context) (domain.Report, error) {
	report, err := r.comparer.Compare(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	var buf bytes.Buffer
	if err := r.renderer.Render(&buf, report); err != nil {
		return report, fmt.Errorf("render %s report: %w", r.renderer.Name(), err)
	}
	if err := r.viewer.Show(ctx, buf.Bytes(), r.renderer.Extension()); err != nil {
		return report, fmt.Errorf("show report: %w", err)
	}
	r.info("report delivered", "format", r.renderer.Name(), "new", len(report.Delta))

	r.notify(ctx, report)
	return report, nil
}

func (r *Reporter) notify(ctx context.Context, report domain.Report) {
	if r.notifier == nil || r.digester == nil {
		return
	}
	if len(report.Delta) == 0 {
		r.debug("no new entries; skipping notification")
		return
	}
	if err := r.notifier.PublishDigest(ctx, r.digester.Digest(report)); err != nil {
		r.warn("notification failed", "error", err)
		return
	}
	r.info("digest published", "entries", len(report.Delta))
}

func (r *Reporter) info(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Reporter) debug(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *Reporter) warn(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

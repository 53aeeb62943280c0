package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

const weekWorkers = 2

// PipelineDeps wires all driven adapters into the comparison pipeline.
type PipelineDeps struct {
	Discoverer ports.PageDiscoverer
	Source     ports.WeekSource
	Progress   ports.Progress
	Logger     *slog.Logger
	Now        func() time.Time
}

// Pipeline implements the discover, fetch, parse and diff workflow.
type Pipeline struct {
	discoverer ports.PageDiscoverer
	source     ports.WeekSource
	progress   ports.Progress
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		discoverer: deps.Discoverer,
		source:     deps.Source,
		progress:   deps.Progress,
		logger:     deps.Logger,
		now:        now,
	}
}

type weekResult struct {
	current bool
	entries []domain.Entry
}

// Compare discovers the two latest weekly pages, collects both concurrently
// and returns the entries new in the current week.
func (p *Pipeline) Compare(ctx context.Context) (domain.Report, error) {
	p.startProgress("Discovering weekly pages")
	defer p.stopProgress()

	refs := p.discoverer.Discover(ctx)
	if len(refs) < 2 {
		return domain.Report{}, fmt.Errorf("found %d page(s): %w", len(refs), domain.ErrInsufficientPages)
	}
	current, previous := refs[0], refs[1]
	p.debug("comparing weeks", "current", current.URL, "previous", previous.URL)

	// Each task owns its entries; results travel over a dedicated channel.
	// A plain Group keeps one failing week from cancelling the other.
	results := make(chan weekResult, weekWorkers)
	var g errgroup.Group
	g.SetLimit(weekWorkers)
	for _, ref := range []struct {
		url     string
		current bool
	}{{current.URL, true}, {previous.URL, false}} {
		ref := ref
		g.Go(func() error {
			results <- weekResult{current: ref.current, entries: p.source.Collect(ctx, ref.url)}
			return nil
		})
	}

	p.updateProgress(fmt.Sprintf("Fetching 0/%d weekly pages", weekWorkers))
	var currentEntries, previousEntries []domain.Entry
	for done := 1; done <= weekWorkers; done++ {
		r := <-results
		if r.current {
			currentEntries = r.entries
		} else {
			previousEntries = r.entries
		}
		p.updateProgress(fmt.Sprintf("Fetching %d/%d weekly pages", done, weekWorkers))
	}
	// Week tasks never return an error; Wait only joins them.
	_ = g.Wait()

	if len(currentEntries) == 0 {
		return domain.Report{}, fmt.Errorf("%s: %w", current.URL, domain.ErrNoCurrentEntries)
	}
	if len(previousEntries) == 0 {
		p.warn("previous week yielded no entries; every current entry is reported as new", "previous", previous.URL)
	}

	delta := Diff(currentEntries, previousEntries)
	p.debug("diff computed", "current", len(currentEntries), "previous", len(previousEntries), "new", len(delta))

	return domain.Report{
		Current:       current,
		Previous:      previous,
		CurrentCount:  len(currentEntries),
		PreviousCount: len(previousEntries),
		Delta:         delta,
		GeneratedAt:   p.now(),
	}, nil
}

func (p *Pipeline) startProgress(msg string) {
	if p.progress != nil {
		p.progress.Start(msg)
	}
}

func (p *Pipeline) updateProgress(msg string) {
	if p.progress != nil {
		p.progress.Update(msg)
	}
}

func (p *Pipeline) stopProgress() {
	if p.progress != nil {
		p.progress.Stop()
	}
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

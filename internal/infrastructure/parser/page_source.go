package parser

import (
	"context"
	"log/slog"

	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

// PanelParser turns one panel into an entry; *EntryParser is the default.
type PanelParser interface {
	Parse(panel Panel) (domain.Entry, error)
}

// PageSource implements WeekSource: fetch, extract the section, parse panels.
type PageSource struct {
	fetcher   ports.Fetcher
	extractor *SectionExtractor
	parser    PanelParser
	logger    *slog.Logger
}

var _ ports.WeekSource = (*PageSource)(nil)

// NewPageSource wires the per-page collaborators.
func NewPageSource(fetcher ports.Fetcher, extractor *SectionExtractor, parser PanelParser, log *slog.Logger) *PageSource {
	return &PageSource{
		fetcher:   fetcher,
		extractor: extractor,
		parser:    parser,
		logger:    log,
	}
}

// Collect returns the entries of one weekly page in document order. Any
// page-level problem degrades to an empty result.
func (s *PageSource) Collect(ctx context.Context, url string) []domain.Entry {
	markup, ok := s.fetcher.Fetch(ctx, url)
	if !ok {
		return nil
	}

	panels, err := s.extractor.ExtractMarkup(markup)
	if err != nil {
		s.warn("extract section", "url", url, "error", err)
		return nil
	}
	if len(panels) == 0 {
		s.warn("section has no panels", "url", url, "section", s.extractor.phrase)
		return nil
	}

	entries := make([]domain.Entry, 0, len(panels))
	for i, panel := range panels {
		entry, err := s.parser.Parse(panel)
		if err != nil {
			s.warn("skip panel", "url", url, "index", i, "error", err)
			continue
		}
		if entry.Name == "" {
			s.debug("drop untitled panel", "url", url, "index", i)
			continue
		}
		entries = append(entries, entry)
	}

	s.debug("page collected", "url", url, "panels", len(panels), "entries", len(entries))
	return entries
}

func (s *PageSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *PageSource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

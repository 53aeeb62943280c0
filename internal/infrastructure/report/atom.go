package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gorilla/feeds"

	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

// AtomRenderer publishes the delta as an Atom feed, one item per new entry.
type AtomRenderer struct {
	product string
}

var _ ports.Renderer = (*AtomRenderer)(nil)

// NewAtomRenderer builds the feed renderer.
func NewAtomRenderer(product string) *AtomRenderer {
	return &AtomRenderer{product: product}
}

// Name identifies the renderer inside the registry.
func (r *AtomRenderer) Name() string { return "atom" }

// Extension is the file suffix viewers expect.
func (r *AtomRenderer) Extension() string { return ".xml" }

// Render writes the Atom document.
func (r *AtomRenderer) Render(w io.Writer, report domain.Report) error {
	published := report.Current.EffectiveDate
	if published.Equal(domain.EpochSentinel) {
		published = report.GeneratedAt
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("New %s changes", r.product),
		Link:        &feeds.Link{Href: report.Current.URL},
		Description: fmt.Sprintf("Entries in %s that were not in %s", report.Current.URL, report.Previous.URL),
		Id:          report.Current.URL,
		Updated:     report.GeneratedAt,
		Created:     published,
		Items:       make([]*feeds.Item, 0, len(report.Delta)),
	}

	for _, entry := range report.Delta {
		title := entry.Name
		if len(entry.StatusLabels) > 0 {
			title = fmt.Sprintf("%s [%s]", entry.Name, entry.StatusText())
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       title,
			Link:        &feeds.Link{Href: report.Current.URL},
			Id:          report.Current.URL + "#" + strings.ReplaceAll(entry.Identity(), " ", "-"),
			Description: plainText(entry.DescriptionMarkup),
			Content:     entry.DescriptionMarkup,
			Created:     published,
		})
	}

	if err := feed.WriteAtom(w); err != nil {
		return fmt.Errorf("render atom feed: %w", err)
	}
	return nil
}

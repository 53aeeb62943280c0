package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"JSMChanges/internal/config"
	"JSMChanges/internal/domain"
)

// Panel is one change-announcement block inside the matched section.
type Panel struct {
	sel *goquery.Selection
}

// Selection exposes the underlying markup of the panel.
func (p Panel) Selection() *goquery.Selection {
	return p.sel
}

// SectionExtractor locates the target heading and collects the panels that
// follow it up to the next heading of an equivalent tier.
type SectionExtractor struct {
	phrase     string
	headings   map[string]bool
	selector   string
	panelClass string
}

// NewSectionExtractor builds an extractor from markup settings.
func NewSectionExtractor(cfg config.MarkupConfig) *SectionExtractor {
	tags := cfg.HeadingTags
	if len(tags) == 0 {
		tags = []string{"h1", "h2"}
	}
	headings := make(map[string]bool, len(tags))
	for _, tag := range tags {
		headings[strings.ToLower(strings.TrimSpace(tag))] = true
	}

	return &SectionExtractor{
		phrase:     domain.Normalize(cfg.Section),
		headings:   headings,
		selector:   strings.Join(tags, ", "),
		panelClass: cfg.PanelClass,
	}
}

// ExtractMarkup parses raw markup and extracts the section panels.
func (e *SectionExtractor) ExtractMarkup(markup string) ([]Panel, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return e.Extract(doc), nil
}

// Extract returns the panels under the first heading containing the phrase,
// in document order. No matching heading yields nil.
func (e *SectionExtractor) Extract(doc *goquery.Document) []Panel {
	header := e.findHeading(doc)
	if header == nil {
		return nil
	}
	start := header.Get(0)

	var (
		panels  []Panel
		started bool
	)
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		node := s.Get(0)
		if !started {
			started = node == start
			return true
		}
		if e.headings[node.Data] {
			return false
		}
		if node.Data == "div" && s.HasClass(e.panelClass) {
			panels = append(panels, Panel{sel: s})
		}
		return true
	})

	return panels
}

func (e *SectionExtractor) findHeading(doc *goquery.Document) *goquery.Selection {
	if e.phrase == "" {
		return nil
	}
	match := doc.Find(e.selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(domain.Normalize(s.Text()), e.phrase)
	}).First()
	if match.Length() == 0 {
		return nil
	}
	return match
}

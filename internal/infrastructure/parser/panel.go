package parser

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"JSMChanges/internal/config"
	"JSMChanges/internal/domain"
)

// ErrMalformedPanel marks a panel without usable markup; callers skip it.
var ErrMalformedPanel = errors.New("malformed panel")

// EntryParser converts panels into entries.
type EntryParser struct {
	titleSelector   string
	statusSelector  string
	contentSelector string
	format          formatter
}

// NewEntryParser wires selectors and the origin used to absolutize links.
func NewEntryParser(cfg config.MarkupConfig, baseURL string) (*EntryParser, error) {
	var base *url.URL
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}
		base = parsed
	}

	return &EntryParser{
		titleSelector:   cfg.TitleSelector,
		statusSelector:  cfg.StatusSelector,
		contentSelector: cfg.ContentSelector,
		format:          formatter{base: base},
	}, nil
}

// Parse extracts title, status labels and description from one panel.
// An empty Name is valid output; the caller decides whether to keep it.
func (p *EntryParser) Parse(panel Panel) (domain.Entry, error) {
	if panel.sel == nil || panel.sel.Length() == 0 || panel.sel.Get(0).Type != html.ElementNode {
		return domain.Entry{}, ErrMalformedPanel
	}

	name := strings.TrimSpace(panel.sel.Find(p.titleSelector).First().Text())

	var labels []string
	panel.sel.Find(p.statusSelector).Each(func(_ int, s *goquery.Selection) {
		if label := strings.TrimSpace(s.Text()); label != "" {
			labels = append(labels, label)
		}
	})

	return domain.Entry{
		Name:              name,
		StatusLabels:      labels,
		DescriptionMarkup: p.description(panel.sel.Find(p.contentSelector).First()),
	}, nil
}

func (p *EntryParser) description(content *goquery.Selection) string {
	var sb strings.Builder
	content.Children().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch classify(node) {
		case kindParagraph:
			p.writeParagraph(&sb, node)
		case kindList:
			p.format.writeList(&sb, node)
		}
	})
	return sb.String()
}

func (p *EntryParser) writeParagraph(sb *strings.Builder, node *html.Node) {
	if items, ok := detectInlineList(flattenText(node, " ")); ok {
		sb.WriteString("<ol>")
		for _, item := range items {
			sb.WriteString("<li>")
			sb.WriteString(html.EscapeString(item))
			sb.WriteString("</li>")
		}
		sb.WriteString("</ol>")
		return
	}

	sb.WriteString("<p>")
	sb.WriteString(p.format.inline(node))
	sb.WriteString("</p>")
}

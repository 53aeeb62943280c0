package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

// TextRenderer produces a plain-text digest for terminals and chat channels.
type TextRenderer struct {
	product string
}

var _ ports.Renderer = (*TextRenderer)(nil)

// NewTextRenderer builds the plain-text renderer.
func NewTextRenderer(product string) *TextRenderer {
	return &TextRenderer{product: product}
}

// Name identifies the renderer inside the registry.
func (r *TextRenderer) Name() string { return "text" }

// Extension is the file suffix viewers expect.
func (r *TextRenderer) Extension() string { return ".txt" }

// Render writes the digest.
func (r *TextRenderer) Render(w io.Writer, report domain.Report) error {
	_, err := io.WriteString(w, r.Digest(report))
	return err
}

// Digest formats the report as plain text.
func (r *TextRenderer) Digest(report domain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "New %s changes\n", r.product)
	fmt.Fprintf(&sb, "Current week: %s\n", report.Current.URL)
	fmt.Fprintf(&sb, "Last week: %s\n\n", report.Previous.URL)

	if len(report.Delta) == 0 {
		fmt.Fprintf(&sb, "No new %s entries this week.\n", r.product)
		return sb.String()
	}

	for _, entry := range report.Delta {
		fmt.Fprintf(&sb, "- %s\n", entry.Name)
		if len(entry.StatusLabels) > 0 {
			fmt.Fprintf(&sb, "  [%s]\n", entry.StatusText())
		}
		if summary := plainText(entry.DescriptionMarkup); summary != "" {
			fmt.Fprintf(&sb, "  %s\n", summary)
		}
	}
	return sb.String()
}

func plainText(markup string) string {
	if markup == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	var sb strings.Builder
	writeText(&sb, doc.Selection.Nodes...)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// writeText gathers text nodes, opening a word break at each block element
// so paragraphs and list items stay apart.
func writeText(sb *strings.Builder, nodes ...*html.Node) {
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
		case html.ElementNode, html.DocumentNode:
			block := n.Type == html.ElementNode && blockElements[n.DataAtom]
			if block {
				sb.WriteByte('\n')
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				writeText(sb, c)
			}
			if block {
				sb.WriteByte('\n')
			}
		}
	}
}

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true,
	atom.Ol: true, atom.Ul: true, atom.Li: true,
}

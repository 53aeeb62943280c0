package parser

import (
	"context"
	"fmt"
	"strings"

	"JSMChanges/internal/config"
)

const testBaseURL = "https://confluence.atlassian.com"

type stubFetcher struct {
	pages map[string]string
}

func (s stubFetcher) Fetch(_ context.Context, url string) (string, bool) {
	body, ok := s.pages[url]
	return body, ok
}

func testMarkup() config.MarkupConfig {
	return config.Default().Markup
}

func panelHTML(title string, labels []string, body string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="panel-block">`)
	if title != "" {
		fmt.Fprintf(&sb, `<div class="panel-block-title"><h4>%s</h4></div>`, title)
	}
	for _, label := range labels {
		fmt.Fprintf(&sb, `<span class="status-macro aui-lozenge">%s</span>`, label)
	}
	fmt.Fprintf(&sb, `<div class="panel-block-content">%s</div>`, body)
	sb.WriteString(`</div>`)
	return sb.String()
}

func weeklyPage(sections ...string) string {
	return "<html><body><div id=\"main-content\">" + strings.Join(sections, "\n") + "</div></body></html>"
}

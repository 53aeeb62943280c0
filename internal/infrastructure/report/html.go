package report

import (
	"fmt"
	"html/template"
	"io"

	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

// HTMLRenderer produces the self-contained styled report document.
type HTMLRenderer struct {
	product string
	tmpl    *template.Template
}

var _ ports.Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer builds the renderer for the given product area name.
func NewHTMLRenderer(product string) *HTMLRenderer {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"lozenge": LozengeClass,
		// Descriptions are escaped by the entry parser before they get here.
		"trusted": func(s string) template.HTML { return template.HTML(s) },
	}).Parse(htmlTemplate))

	return &HTMLRenderer{product: product, tmpl: tmpl}
}

// Name identifies the renderer inside the registry.
func (r *HTMLRenderer) Name() string { return "html" }

// Extension is the file suffix viewers expect.
func (r *HTMLRenderer) Extension() string { return ".html" }

// Render writes the report document.
func (r *HTMLRenderer) Render(w io.Writer, report domain.Report) error {
	data := struct {
		Product string
		Report  domain.Report
	}{Product: r.product, Report: report}

	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>New {{.Product}} Weekly Release Notes</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; background: #F4F5F7; color: #172B4D; margin: 0; padding: 0; }
.container { max-width: 900px; margin: 40px auto; padding: 0 24px 24px 24px; }
h1 { font-size: 2rem; font-weight: 500; color: #253858; margin-top: 40px; margin-bottom: 0.5em; }
h2 { font-size: 1.25rem; font-weight: 500; color: #172B4D; margin-top: 0; margin-bottom: 0.5em; }
.panel { background: #fff; border: 1px solid #DFE1E6; border-radius: 8px; box-shadow: 0 1px 4px rgba(9,30,66,0.08); padding: 24px 32px 20px 32px; margin-bottom: 32px; }
.status { margin-bottom: 1em; }
.lozenge { display: inline-block; padding: 2px 12px; border-radius: 16px; font-size: 12px; font-weight: 500; line-height: 1.5; margin-right: 8px; margin-bottom: 2px; vertical-align: middle; border: 1px solid #C1C7D0; color: #42526E; background: transparent; }
.lozenge.coming-soon { background: #6554C0; color: #fff; border-color: transparent; }
.lozenge.rolling-out { background: #0052CC; color: #fff; border-color: transparent; }
.lozenge.launched { background: #36B37E; color: #fff; border-color: transparent; }
.lozenge.in-progress { background: #FFAB00; color: #172B4D; border-color: transparent; }
.lozenge.deprecated, .lozenge.removed { background: #FF5630; color: #fff; border-color: transparent; }
.lozenge.beta, .lozenge.experimental { background: #6554C0; color: #fff; border-color: transparent; }
.lozenge.new-this-week { background: #36B37E; color: #fff; border-color: transparent; }
.url, .note { font-size: 0.95em; color: #6B778C; margin-bottom: 0.5em; }
a { color: #0052CC; text-decoration: none; border-bottom: 1px dotted #0052CC; }
a:hover { border-bottom: 1px solid #0052CC; }
ul, ol { margin-top: 0.5em; margin-left: 2em; margin-bottom: 1em; }
li { margin-bottom: 0.5em; line-height: 1.6; }
p { margin-top: 0.5em; margin-bottom: 0.5em; line-height: 1.7; }
hr { border: none; border-top: 1px solid #DFE1E6; margin: 2em 0; }
</style>
</head>
<body>
<div class="container">
<h1>New {{.Product}} Changes</h1>
<div class="url">Current week: <a href="{{.Report.Current.URL}}" target="_blank" rel="noopener">{{.Report.Current.URL}}</a></div>
<div class="url">Last week: <a href="{{.Report.Previous.URL}}" target="_blank" rel="noopener">{{.Report.Previous.URL}}</a></div>
{{- if eq .Report.PreviousCount 0}}
<div class="note">Last week's page yielded no entries, so every current entry is listed.</div>
{{- end}}
<hr>
{{- range .Report.Delta}}
<div class="panel">
<h2>{{.Name}}</h2>
{{- if .StatusLabels}}
<div class="status">{{range .StatusLabels}}<span class="lozenge {{lozenge .}}">{{.}}</span>{{end}}</div>
{{- end}}
{{trusted .DescriptionMarkup}}
</div>
{{- else}}
<p>No new {{.Product}} entries this week.</p>
{{- end}}
</div>
</body>
</html>
`

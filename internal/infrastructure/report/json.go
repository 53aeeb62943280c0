package report

import (
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONRenderer emits the delta in a machine-readable form.
type JSONRenderer struct{}

var _ ports.Renderer = (*JSONRenderer)(nil)

// NewJSONRenderer builds the JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Name identifies the renderer inside the registry.
func (r *JSONRenderer) Name() string { return "json" }

// Extension is the file suffix viewers expect.
func (r *JSONRenderer) Extension() string { return ".json" }

type jsonPage struct {
	URL           string `json:"url"`
	EffectiveDate string `json:"effectiveDate"`
	Entries       int    `json:"entries"`
}

type jsonEntry struct {
	Name         string   `json:"name"`
	StatusLabels []string `json:"statusLabels"`
	Description  string   `json:"descriptionHtml"`
}

type jsonReport struct {
	GeneratedAt string      `json:"generatedAt"`
	Current     jsonPage    `json:"current"`
	Previous    jsonPage    `json:"previous"`
	New         []jsonEntry `json:"new"`
}

// Render writes the report as indented JSON.
func (r *JSONRenderer) Render(w io.Writer, report domain.Report) error {
	payload := jsonReport{
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC3339),
		Current:     page(report.Current, report.CurrentCount),
		Previous:    page(report.Previous, report.PreviousCount),
		New:         make([]jsonEntry, 0, len(report.Delta)),
	}
	for _, entry := range report.Delta {
		labels := entry.StatusLabels
		if labels == nil {
			labels = []string{}
		}
		payload.New = append(payload.New, jsonEntry{
			Name:         entry.Name,
			StatusLabels: labels,
			Description:  entry.DescriptionMarkup,
		})
	}

	enc := jsonAPI.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("render json report: %w", err)
	}
	return nil
}

func page(ref domain.WeeklyPageRef, entries int) jsonPage {
	return jsonPage{
		URL:           ref.URL,
		EffectiveDate: ref.EffectiveDate.Format("2006-01-02"),
		Entries:       entries,
	}
}

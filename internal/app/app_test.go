package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JSMChanges/internal/config"
	"JSMChanges/internal/domain"
	"JSMChanges/internal/infrastructure/progress"
)

const (
	currentPath  = "/cloud/blog/2025/06/atlassian-cloud-changes-jun-9-to-jun-16-2025"
	previousPath = "/cloud/blog/2025/06/atlassian-cloud-changes-jun-2-to-jun-9-2025"
)

type captureViewer struct {
	document  string
	extension string
}

func (v *captureViewer) Show(_ context.Context, document []byte, extension string) error {
	v.document = string(document)
	v.extension = extension
	return nil
}

func panel(title string) string {
	return `<div class="panel-block"><h4>` + title + `</h4>` +
		`<span class="status-macro">ROLLING OUT</span>` +
		`<div class="panel-block-content"><p>About ` + title + `</p></div></div>`
}

func week(jsm ...string) string {
	return `<html><body><h2>Confluence</h2>` + panel("Whiteboards") +
		`<h2>Jira Service Management</h2>` + strings.Join(jsm, "") +
		`<h2>Jira</h2>` + panel("Timeline") + `</body></html>`
}

func newSiteServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(serverURL, format string) config.Config {
	cfg := config.Default()
	cfg.Source.IndexURL = serverURL + "/cloud/blog"
	cfg.Source.BaseURL = serverURL
	cfg.HTTP.Timeout = 2 * time.Second
	cfg.Report.Format = format
	return cfg
}

func TestRunReportsNewEntries(t *testing.T) {
	t.Parallel()

	index := `<html><body>
		<a href="` + previousPath + `">Last week</a>
		<a href="` + currentPath + `">This week</a>
		<a href="/cloud/blog/unrelated-post">Other</a>
	</body></html>`
	server := newSiteServer(t, map[string]string{
		"/cloud/blog": index,
		currentPath:   week(panel("Approval Queues"), panel("Virtual Agent")),
		previousPath:  week(panel("virtual  agent")),
	})

	viewer := &captureViewer{}
	application, err := New(testConfig(server.URL, "text"), nil,
		WithProgress(progress.Noop{}), WithViewer(viewer))
	require.NoError(t, err)

	report, err := application.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, server.URL+currentPath, report.Current.URL)
	assert.Equal(t, server.URL+previousPath, report.Previous.URL)
	assert.Equal(t, 2, report.CurrentCount)
	assert.Equal(t, 1, report.PreviousCount)
	require.Len(t, report.Delta, 1)
	assert.Equal(t, "Approval Queues", report.Delta[0].Name)
	assert.Equal(t, []string{"ROLLING OUT"}, report.Delta[0].StatusLabels)

	assert.Equal(t, ".txt", viewer.extension)
	assert.Contains(t, viewer.document, "Approval Queues")
	assert.NotContains(t, viewer.document, "Whiteboards")
}

func TestRunInsufficientPages(t *testing.T) {
	t.Parallel()

	server := newSiteServer(t, map[string]string{
		"/cloud/blog": `<a href="` + currentPath + `">only one</a>`,
	})

	application, err := New(testConfig(server.URL, "html"), nil,
		WithProgress(progress.Noop{}), WithViewer(&captureViewer{}))
	require.NoError(t, err)

	_, err = application.Run(context.Background())
	assert.True(t, errors.Is(err, domain.ErrInsufficientPages))
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New(testConfig("http://127.0.0.1", "pdf"), nil, WithProgress(progress.Noop{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}

func TestWatchRejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	cfg := testConfig("http://127.0.0.1", "html")
	cfg.Scheduler.Interval = 0
	application, err := New(cfg, nil, WithProgress(progress.Noop{}), WithViewer(&captureViewer{}))
	require.NoError(t, err)

	assert.Error(t, application.Watch(context.Background()))
}

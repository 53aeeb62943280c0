package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"JSMChanges/internal/config"
	"JSMChanges/internal/domain"
	"JSMChanges/internal/infrastructure/fetcher"
)

func TestParseEffectiveDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want time.Time
	}{
		{
			url:  "https://confluence.atlassian.com/cloud/blog/2025/06/atlassian-cloud-changes-jun-2-to-jun-9-2025",
			want: time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			url:  "/cloud/blog/2024/12/atlassian-cloud-changes-dec-23-to-december-30-2024",
			want: time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			url:  "/cloud/blog/atlassian-cloud-changes-xyz-1-to-foo-7-2025",
			want: time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC),
		},
		{url: "/cloud/blog/atlassian-cloud-changes-feb-24-to-feb-30-2025", want: domain.EpochSentinel},
		{url: "/cloud/blog/atlassian-cloud-changes-feb-24-to-feb-0-2025", want: domain.EpochSentinel},
		{url: "/cloud/blog/some-other-post", want: domain.EpochSentinel},
	}

	for _, tt := range tests {
		got := ParseEffectiveDate(tt.url)
		if !got.Equal(tt.want) {
			t.Fatalf("ParseEffectiveDate(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func newIndexServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cloud/blog" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestDiscoverer(t *testing.T, indexURL string) *Discoverer {
	t.Helper()
	d, err := NewDiscoverer(fetcher.New(time.Second), config.SourceConfig{
		IndexURL:   indexURL,
		BaseURL:    testBaseURL,
		SlugPrefix: "atlassian-cloud-changes",
	}, nil)
	if err != nil {
		t.Fatalf("NewDiscoverer returned error: %v", err)
	}
	return d
}

func TestDiscoverReturnsTwoMostRecent(t *testing.T) {
	t.Parallel()

	server := newIndexServer(t, `
	<ul>
	  <li><a href="/cloud/blog/2025/06/atlassian-cloud-changes-jun-2-to-jun-9-2025">Jun 2 - Jun 9</a></li>
	  <li><a href="/cloud/blog/2025/06/atlassian-cloud-changes-jun-9-to-jun-16-2025">Jun 9 - Jun 16</a></li>
	  <li><a href="https://confluence.atlassian.com/cloud/blog/2025/06/atlassian-cloud-changes-jun-9-to-jun-16-2025">duplicate</a></li>
	  <li><a href="/cloud/blog/2025/05/atlassian-cloud-changes-may-26-to-jun-2-2025">May 26 - Jun 2</a></li>
	  <li><a href="/cloud/blog/2025/06/atlassian-cloud-changes-jun-9-to-jun-16-2025?utm=x">tracked</a></li>
	  <li><a href="/cloud/blog/other-post">Other</a></li>
	  <li><a>no href</a></li>
	</ul>`)

	refs := newTestDiscoverer(t, server.URL+"/cloud/blog").Discover(context.Background())

	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d: %+v", len(refs), refs)
	}
	if refs[0].URL != testBaseURL+"/cloud/blog/2025/06/atlassian-cloud-changes-jun-9-to-jun-16-2025" {
		t.Fatalf("unexpected current url: %s", refs[0].URL)
	}
	if refs[1].URL != testBaseURL+"/cloud/blog/2025/06/atlassian-cloud-changes-jun-2-to-jun-9-2025" {
		t.Fatalf("unexpected previous url: %s", refs[1].URL)
	}
	if !refs[0].EffectiveDate.After(refs[1].EffectiveDate) {
		t.Fatalf("refs not ordered by date: %+v", refs)
	}
}

func TestDiscoverMalformedDateSortsLast(t *testing.T) {
	t.Parallel()

	server := newIndexServer(t, `
	<a href="/cloud/blog/atlassian-cloud-changes-feb-24-to-feb-31-2025">broken</a>
	<a href="/cloud/blog/atlassian-cloud-changes-jan-6-to-jan-13-2025">valid</a>`)

	refs := newTestDiscoverer(t, server.URL+"/cloud/blog").Discover(context.Background())

	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if !refs[1].EffectiveDate.Equal(domain.EpochSentinel) {
		t.Fatalf("expected malformed page last, got %+v", refs)
	}
}

func TestDiscoverTiesKeepDiscoveryOrder(t *testing.T) {
	t.Parallel()

	server := newIndexServer(t, `
	<a href="/a/atlassian-cloud-changes-jan-6-to-jan-13-2025">first</a>
	<a href="/b/atlassian-cloud-changes-jan-6-to-jan-13-2025">second</a>`)

	refs := newTestDiscoverer(t, server.URL+"/cloud/blog").Discover(context.Background())

	if len(refs) != 2 || refs[0].URL != testBaseURL+"/a/atlassian-cloud-changes-jan-6-to-jan-13-2025" {
		t.Fatalf("unexpected order: %+v", refs)
	}
}

func TestDiscoverSingleCandidate(t *testing.T) {
	t.Parallel()

	server := newIndexServer(t, `<a href="/cloud/blog/atlassian-cloud-changes-jan-6-to-jan-13-2025">only</a>`)

	refs := newTestDiscoverer(t, server.URL+"/cloud/blog").Discover(context.Background())
	if len(refs) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(refs))
	}
}

func TestDiscoverIndexUnavailable(t *testing.T) {
	t.Parallel()

	server := newIndexServer(t, "")

	refs := newTestDiscoverer(t, server.URL+"/missing").Discover(context.Background())
	if len(refs) != 0 {
		t.Fatalf("expected no refs, got %+v", refs)
	}
}

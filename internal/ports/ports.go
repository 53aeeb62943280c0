package ports

import (
	"context"
	"io"
	"time"

	"JSMChanges/internal/domain"
)

// Fetcher retrieves raw markup. ok is false for any transport failure,
// timeout or non-success status; it never returns an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (markup string, ok bool)
}

// PageDiscoverer finds the weekly pages to compare, most recent first.
type PageDiscoverer interface {
	Discover(ctx context.Context) []domain.WeeklyPageRef
}

// WeekSource turns one weekly page into its ordered entry set.
type WeekSource interface {
	Collect(ctx context.Context, url string) []domain.Entry
}

// Renderer turns a comparison report into a document.
type Renderer interface {
	Name() string
	Extension() string
	Render(w io.Writer, report domain.Report) error
}

// Viewer hands a rendered document to the user.
type Viewer interface {
	Show(ctx context.Context, document []byte, extension string) error
}

// Notifier streams a plain-text digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Progress is the console progress indicator.
type Progress interface {
	Start(message string)
	Update(message string)
	Stop()
}

// Scheduler controls when repeated runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

// Digester formats a report as a short plain-text message.
type Digester interface {
	Digest(report domain.Report) string
}

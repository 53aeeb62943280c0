package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"JSMChanges/internal/config"
	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

const (
	defaultSlugPrefix = "changes"
	comparedPages     = 2
)

var (
	toDateExpr = regexp.MustCompile(`-to-([a-z]{3,9})-(\d{1,2})-(\d{4})$`)

	monthAbbrev = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March,
		"apr": time.April, "may": time.May, "jun": time.June,
		"jul": time.July, "aug": time.August, "sep": time.September,
		"oct": time.October, "nov": time.November, "dec": time.December,
	}
)

// Discoverer scans the changelog index for dated weekly pages.
type Discoverer struct {
	fetcher  ports.Fetcher
	indexURL string
	base     *url.URL
	slugExpr *regexp.Regexp
	logger   *slog.Logger
}

var _ ports.PageDiscoverer = (*Discoverer)(nil)

// NewDiscoverer wires the fetcher with index and slug settings.
func NewDiscoverer(fetcher ports.Fetcher, cfg config.SourceConfig, log *slog.Logger) (*Discoverer, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", cfg.BaseURL, err)
	}

	prefix := cfg.SlugPrefix
	if prefix == "" {
		prefix = defaultSlugPrefix
	}
	slugExpr, err := regexp.Compile(regexp.QuoteMeta(prefix) + `-[a-z]{3,9}-\d{1,2}-to-[a-z]{3,9}-\d{1,2}-\d{4}$`)
	if err != nil {
		return nil, fmt.Errorf("slug pattern: %w", err)
	}

	return &Discoverer{
		fetcher:  fetcher,
		indexURL: cfg.IndexURL,
		base:     base,
		slugExpr: slugExpr,
		logger:   log,
	}, nil
}

// Discover returns up to two weekly pages, most recent first. An unavailable
// index yields nil; the caller decides whether that is fatal.
func (d *Discoverer) Discover(ctx context.Context) []domain.WeeklyPageRef {
	markup, ok := d.fetcher.Fetch(ctx, d.indexURL)
	if !ok {
		d.warn("changelog index unavailable", "url", d.indexURL)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		d.warn("parse changelog index", "error", err)
		return nil
	}

	refs := d.collect(doc)
	d.debug("weekly pages discovered", "count", len(refs))

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].EffectiveDate.After(refs[j].EffectiveDate)
	})
	if len(refs) > comparedPages {
		refs = refs[:comparedPages]
	}
	return refs
}

func (d *Discoverer) collect(doc *goquery.Document) []domain.WeeklyPageRef {
	var refs []domain.WeeklyPageRef
	seen := map[string]struct{}{}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if !d.slugExpr.MatchString(href) {
			return
		}

		resolved := d.resolve(href)
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		refs = append(refs, domain.WeeklyPageRef{
			URL:           resolved,
			EffectiveDate: ParseEffectiveDate(resolved),
		})
	})

	return refs
}

func (d *Discoverer) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	return d.base.ResolveReference(ref).String()
}

// ParseEffectiveDate reads the "to" date of a weekly slug. Unknown month
// abbreviations fall back to January; anything unparsable becomes the
// epoch sentinel.
func ParseEffectiveDate(pageURL string) time.Time {
	m := toDateExpr.FindStringSubmatch(pageURL)
	if m == nil {
		return domain.EpochSentinel
	}

	month, ok := monthAbbrev[m[1][:3]]
	if !ok {
		month = time.January
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.EpochSentinel
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return domain.EpochSentinel
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Month() != month || date.Day() != day {
		return domain.EpochSentinel
	}
	return date
}

func (d *Discoverer) debug(msg string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

func (d *Discoverer) warn(msg string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Warn(msg, args...)
	}
}

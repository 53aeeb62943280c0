package domain

import (
	"strings"
	"time"
)

// EpochSentinel is the effective date assigned to weekly pages whose slug
// date cannot be parsed; such pages sort after every dated page.
var EpochSentinel = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// WeeklyPageRef points at one dated changelog snapshot.
type WeeklyPageRef struct {
	URL           string
	EffectiveDate time.Time
}

// Entry is a single change announcement extracted from a panel.
type Entry struct {
	Name              string
	StatusLabels      []string
	DescriptionMarkup string
}

// StatusText joins status labels for storage and plain-text output.
func (e Entry) StatusText() string {
	return strings.Join(e.StatusLabels, ", ")
}

// Identity returns the normalized identity used as the diff key.
func (e Entry) Identity() string {
	return Normalize(e.Name)
}

// Normalize lowercases s, collapses whitespace runs to a single space and
// trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Report is the outcome of one successful comparison run.
type Report struct {
	Current       WeeklyPageRef
	Previous      WeeklyPageRef
	CurrentCount  int
	PreviousCount int
	Delta         []Entry
	GeneratedAt   time.Time
}

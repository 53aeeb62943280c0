package domain

import "errors"

// Run-level failures. Everything else degrades to a smaller result.
var (
	ErrInsufficientPages = errors.New("fewer than two source pages discoverable")
	ErrNoCurrentEntries  = errors.New("no entries extracted for the current week")
)

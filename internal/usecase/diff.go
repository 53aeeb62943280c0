package usecase

import "JSMChanges/internal/domain"

// Diff returns the current entries whose normalized identity does not occur
// in previous, in their original order.
func Diff(current, previous []domain.Entry) []domain.Entry {
	seen := make(map[string]struct{}, len(previous))
	for _, entry := range previous {
		seen[entry.Identity()] = struct{}{}
	}

	delta := make([]domain.Entry, 0, len(current))
	for _, entry := range current {
		if _, ok := seen[entry.Identity()]; ok {
			continue
		}
		delta = append(delta, entry)
	}
	return delta
}

package report

import "strings"

// lozengeStyles is checked in order; the first substring hit wins.
var lozengeStyles = []struct {
	keyword string
	class   string
}{
	{"coming soon", "coming-soon"},
	{"rolling out", "rolling-out"},
	{"launched", "launched"},
	{"in progress", "in-progress"},
	{"deprecated", "deprecated"},
	{"removed", "removed"},
	{"beta", "beta"},
	{"experimental", "experimental"},
	{"new this week", "new-this-week"},
}

// LozengeClass maps a status label to its color class, or "" when the label
// matches nothing in the vocabulary.
func LozengeClass(label string) string {
	lower := strings.ToLower(label)
	for _, style := range lozengeStyles {
		if strings.Contains(lower, style.keyword) {
			return style.class
		}
	}
	return ""
}

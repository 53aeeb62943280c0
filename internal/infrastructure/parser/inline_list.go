package parser

import (
	"strings"
	"unicode"
)

// detectInlineList recognizes a run-on sentence such as
// "1. Alpha 2. Beta 3. Gamma" and returns its items. Fewer than two markers
// means the text is not a list.
func detectInlineList(text string) ([]string, bool) {
	r := []rune(text)
	var items []string
	for i := 0; i < len(r); {
		item, next, ok := matchNumberedItem(r, i)
		if !ok {
			i++
			continue
		}
		items = append(items, strings.TrimSpace(item))
		i = next
	}
	if len(items) < 2 {
		return nil, false
	}
	return items, true
}

// matchNumberedItem matches "<digits>.<spaces><non-digits>" at i. The captured
// run must end at the end of text or right before the next "<digits>." marker.
func matchNumberedItem(r []rune, i int) (string, int, bool) {
	j := i
	for j < len(r) && unicode.IsDigit(r[j]) {
		j++
	}
	if j == i || j >= len(r) || r[j] != '.' {
		return "", 0, false
	}
	j++

	start := j
	for start < len(r) && unicode.IsSpace(r[start]) {
		start++
	}
	// A marker directly followed by another one still captures the gap.
	if start > j && (start == len(r) || unicode.IsDigit(r[start])) {
		start--
	}

	end := start
	for end < len(r) && !unicode.IsDigit(r[end]) {
		end++
	}
	if end == start {
		return "", 0, false
	}
	if end < len(r) && !markerAt(r, end) {
		return "", 0, false
	}
	return string(r[start:end]), end, true
}

func markerAt(r []rune, i int) bool {
	j := i
	for j < len(r) && unicode.IsDigit(r[j]) {
		j++
	}
	return j > i && j < len(r) && r[j] == '.'
}

package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"JSMChanges/internal/domain"
)

func entries(names ...string) []domain.Entry {
	out := make([]domain.Entry, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Entry{Name: n})
	}
	return out
}

func names(in []domain.Entry) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		out = append(out, e.Name)
	}
	return out
}

func TestDiffScenario(t *testing.T) {
	t.Parallel()

	current := entries("New Approvals UI", "Queue Filters")
	previous := entries("queue filters", "Old Widget")

	assert.Equal(t, []string{"New Approvals UI"}, names(Diff(current, previous)))
}

func TestDiffIgnoresLabelsAndDescription(t *testing.T) {
	t.Parallel()

	current := []domain.Entry{{Name: "Queue  Filters ", StatusLabels: []string{"Launched"}, DescriptionMarkup: "<p>new</p>"}}
	previous := []domain.Entry{{Name: "queue filters", StatusLabels: []string{"Rolling out"}, DescriptionMarkup: "<p>old</p>"}}

	assert.Empty(t, Diff(current, previous))
}

func TestDiffEmptyPreviousReturnsCurrent(t *testing.T) {
	t.Parallel()

	current := []domain.Entry{
		{Name: "B", StatusLabels: []string{"Beta"}},
		{Name: "A", DescriptionMarkup: "<p>a</p>"},
		{Name: "C"},
	}

	assert.Equal(t, current, Diff(current, nil))
}

func TestDiffPreservesOrderAndSubset(t *testing.T) {
	t.Parallel()

	current := entries("e", "d", "c", "b", "a")
	previous := entries("D", "b", "z")

	delta := Diff(current, previous)

	assert.Equal(t, []string{"e", "c", "a"}, names(delta))

	prevIDs := map[string]bool{}
	for _, p := range previous {
		prevIDs[p.Identity()] = true
	}
	pos := -1
	for _, d := range delta {
		assert.False(t, prevIDs[d.Identity()], "delta entry %q matches previous week", d.Name)
		idx := indexOf(current, d.Name)
		assert.Greater(t, idx, pos, "delta out of order at %q", d.Name)
		pos = idx
	}
}

func TestDiffDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	current := []domain.Entry{{Name: "A", StatusLabels: []string{"Beta"}}}
	snapshot := []domain.Entry{{Name: "A", StatusLabels: []string{"Beta"}}}

	delta := Diff(current, nil)
	delta[0].Name = "changed"

	assert.Equal(t, snapshot, current)
}

func TestDiffCurrentEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Diff(nil, entries("a")))
}

func indexOf(in []domain.Entry, name string) int {
	for i, e := range in {
		if e.Name == name {
			return i
		}
	}
	return -1
}

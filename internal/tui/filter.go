package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/dexterm/internal/catalog"
	"github.com/matheuskafuri/dexterm/internal/labels"
)

// filterBar renders the category checkboxes. Selection state lives in the
// browser; the bar only owns its cursor.
type filterBar struct {
	types        []string
	filterMode   bool
	filterCursor int
}

func newFilterBar(types []string) filterBar {
	return filterBar{types: types}
}

func (f *filterBar) toggleCurrent(b *catalog.Browser) {
	if f.filterCursor < len(f.types) {
		b.ToggleCategory(f.types[f.filterCursor])
	}
}

func (f *filterBar) move(delta int) {
	next := f.filterCursor + delta
	if next >= 0 && next < len(f.types) {
		f.filterCursor = next
	}
}

func activeLabel(b *catalog.Browser, tr *labels.Translator) string {
	selected := b.Selected()
	if len(selected) == 0 {
		return "All"
	}
	out := make([]string, len(selected))
	for i, s := range selected {
		out[i] = tr.TypeLabel(s)
	}
	return strings.Join(out, ", ")
}

func (f *filterBar) render(b *catalog.Browser, tr *labels.Translator, width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	if len(b.Selected()) == 0 {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	// keep the cursor visible by starting the row near it
	start := 0
	if f.filterMode && f.filterCursor > 4 {
		start = f.filterCursor - 4
	}
	for i := start; i < len(f.types); i++ {
		key := f.types[i]
		style := tabInactiveStyle
		if b.IsSelected(key) {
			style = tabActiveStyle
		}
		label := tr.TypeLabel(key)
		if f.filterMode && i == f.filterCursor {
			label = "[" + label + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/dexterm/internal/catalog"
	"github.com/matheuskafuri/dexterm/internal/labels"
)

func controlLabel(c catalog.Control, tr *labels.Translator) string {
	switch c.Kind {
	case catalog.ControlPrev:
		return "‹ " + tr.Prev()
	case catalog.ControlNext:
		return tr.Next() + " ›"
	default:
		return c.Label
	}
}

// renderPager draws the controls; focus is the highlighted index, or -1.
func renderPager(controls []catalog.Control, tr *labels.Translator, focus, width int) string {
	if len(controls) == 0 {
		return ""
	}
	parts := make([]string, len(controls))
	for i, c := range controls {
		label := controlLabel(c, tr)
		switch {
		case i == focus:
			parts[i] = pageFocusStyle.Render(label)
		case c.Current:
			parts[i] = pageActiveStyle.Render(label)
		case c.Disabled:
			parts[i] = pageDisabledStyle.Render(label)
		default:
			parts[i] = pageStyle.Render(label)
		}
	}
	row := strings.Join(parts, " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

// defaultPagerFocus puts the cursor on the current page.
func defaultPagerFocus(controls []catalog.Control) int {
	for i, c := range controls {
		if c.Current {
			return i
		}
	}
	return 0
}

// controlTarget finds the enabled control of kind, if any.
func controlTarget(controls []catalog.Control, kind catalog.ControlKind) (int, bool) {
	for _, c := range controls {
		if c.Kind == kind && c.Enabled() {
			return c.Target, true
		}
	}
	return 0, false
}

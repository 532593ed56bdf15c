package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	count       int
	filterLabel string
	search      string
	page        int
	totalPages  int
	searching   bool
	filtering   bool
	pagerFocus  bool
}

func renderStatusBar(s statusInfo, width int) string {
	accent := lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	left := fmt.Sprintf(" %d results", s.count)
	if s.filterLabel != "All" {
		left += " · " + s.filterLabel
	}
	if s.search != "" {
		left += " · " + accent.Render("\""+s.search+"\"")
	}
	if s.totalPages > 1 {
		left += fmt.Sprintf(" · page %d/%d", s.page, s.totalPages)
	}

	right := " / search  f types  n/p page  tab pager  ? help  q quit "
	switch {
	case s.searching:
		right = " esc clear  enter search "
	case s.filtering:
		right = " ←/→ move  space toggle  enter apply "
	case s.pagerFocus:
		right = " ←/→ move  enter go  tab cards "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

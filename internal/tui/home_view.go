package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	`██████╗ ███████╗██╗  ██╗████████╗███████╗██████╗ ███╗   ███╗`,
	`██╔══██╗██╔════╝╚██╗██╔╝╚══██╔══╝██╔════╝██╔══██╗████╗ ████║`,
	`██║  ██║█████╗   ╚███╔╝    ██║   █████╗  ██████╔╝██╔████╔██║`,
	`██║  ██║██╔══╝   ██╔██╗    ██║   ██╔══╝  ██╔══██╗██║╚██╔╝██║`,
	`██████╔╝███████╗██╔╝ ██╗   ██║   ███████╗██║  ██║██║ ╚═╝ ██║`,
	`╚═════╝ ╚══════╝╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚═╝     ╚═╝`,
}

// renderLanding is what the landing view shows before any search or filter.
func renderLanding(width, height, total int) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)

	var lines []string
	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "", "")

	if total > 0 {
		lines = append(lines, helpDimStyle.Render(pluralEntries(total)+" ready to browse"), "")
	}
	lines = append(lines, "          "+keyStyle.Render("[/]")+"  "+labelStyle.Render("Search by name"))
	lines = append(lines, "          "+keyStyle.Render("[f]")+"  "+labelStyle.Render("Filter by type"))
	lines = append(lines, "")
	lines = append(lines, "          "+keyStyle.Render("[q]")+"  "+labelStyle.Render("Quit"))

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func pluralEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/dexterm/internal/catalog"
	"github.com/matheuskafuri/dexterm/internal/labels"
)

const (
	cardWidth = 24 // inner width, border and padding excluded
	cardGap   = 1
)

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// gridColumns is how many cards fit side by side in width.
func gridColumns(width int) int {
	outer := cardWidth + 4 + cardGap
	cols := width / outer
	if cols < 1 {
		return 1
	}
	return cols
}

// imageSource names which image a card would show.
func imageSource(d *catalog.Detail) string {
	switch {
	case d.Artwork != "":
		return "artwork"
	case d.Sprite != "":
		return "sprite"
	default:
		return "placeholder"
	}
}

func renderCard(d *catalog.Detail, tr *labels.Translator, selected bool) string {
	primary := d.PrimaryType()
	badge := typeBadge(primary, tr.TypeLabel(primary))
	id := cardIDStyle.Render(labels.Number(d.ID))

	gap := cardWidth - lipgloss.Width(badge) - lipgloss.Width(id)
	if gap < 1 {
		gap = 1
	}
	header := badge + strings.Repeat(" ", gap) + id
	name := cardNameStyle.Render(truncateStr(tr.DisplayName(d.Name), cardWidth))
	image := cardImageStyle.Render("img: " + imageSource(d))

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", name, image)
	if selected {
		return cardSelectedStyle.Width(cardWidth + 2).Render(body)
	}
	return cardStyle.Width(cardWidth + 2).Render(body)
}

func renderGrid(cards []*catalog.Detail, tr *labels.Translator, cursor, width int, focused bool) string {
	cols := gridColumns(width)
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		var row []string
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, strings.Repeat(" ", cardGap))
			}
			row = append(row, renderCard(cards[i], tr, focused && i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// cardRowHeight is four content lines plus the border.
const cardRowHeight = 6

// gridWindow returns the lines of grid that fit in height while keeping the
// cursor's row visible.
func gridWindow(grid string, cursor, cols, height int) string {
	lines := strings.Split(grid, "\n")
	if height <= 0 || len(lines) <= height {
		return grid
	}
	start := 0
	if bottom := (cursor/cols + 1) * cardRowHeight; bottom > height {
		start = bottom - height
	}
	end := min(start+height, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func lipglossCenter(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/szhu/claude-code-history-exporter/internal/catalog"
)

// linesPerItem is the number of terminal lines each session row occupies.
const linesPerItem = 2

// renderList renders the left panel: cataloged sessions with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.filtered) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No sessions")
	}

	var lines []string
	for i, s := range m.filtered {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatSessionLine(s, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatSessionLine formats a session as two lines:
//
//	line 1: [>] project  date  summary
//	line 2:     cwd (dimmed)
func formatSessionLine(s catalog.Session, width int, selected bool) []string {
	project := styleProject.Render(truncate(s.Project, 18))

	// "2026-01-27T..." -> "01-27"
	date := s.UpdatedAt
	if len(date) >= 10 {
		date = date[5:10]
	}

	summary := strings.ReplaceAll(s.Summary, "\n", " ")
	summaryMax := width - 2 - 18 - 6 - 2
	if summaryMax < 0 {
		summaryMax = 0
	}
	summary = truncate(summary, summaryMax)

	line1 := fmt.Sprintf("%s %s %s", project, date, summary)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	cwd := truncate(s.RepoCwd, width-4)
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(cwd)

	return []string{line1, line2}
}

func truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if runewidth.StringWidth(s) > max {
		return runewidth.Truncate(s, max, "")
	}
	return s
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}

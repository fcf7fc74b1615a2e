package components

import (
	"outgo/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is a single tab in the analytics tab bar.
type Tab struct {
	Name string
}

// Tabs defines the analytics tabs, one per aggregation. Tabs are
// addressed by their 1-based number key.
var Tabs = []Tab{
	{Name: "Trend"},
	{Name: "Monthly"},
	{Name: "Category"},
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	bar := " "
	for i, tab := range Tabs {
		if i > 0 {
			bar += dimStyle.Render(" │ ")
		}
		bar += keyStyle.Render(string(rune('1'+i))) + " "
		if i == activeIdx {
			bar += activeStyle.Render(tab.Name)
		} else {
			bar += inactiveStyle.Render(tab.Name)
		}
	}

	rowStyle := lipgloss.NewStyle().Width(width)
	return rowStyle.Render(bar)
}

// TabVisualWidth returns the rendered width of one tab cell including its
// number-key prefix. Mouse hitboxes are derived from this, so it must
// match RenderTabBar exactly.
func TabVisualWidth(tab Tab) int {
	return 2 + len(tab.Name) // "N " prefix
}

// TabAtX returns the tab index at X, or -1. The layout is one leading
// space, tab cells separated by " │ ".
func TabAtX(x int) int {
	pos := 1
	for i, tab := range Tabs {
		w := TabVisualWidth(tab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 3 // separator " │ "
	}
	return -1
}

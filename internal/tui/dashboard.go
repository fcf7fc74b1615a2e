package tui

import (
	"fmt"
	"strings"

	"outgo/internal/cli"
	"outgo/internal/model"
	"outgo/internal/tui/components"
	"outgo/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard renders the record list with summary cards above it.
func (a *App) renderDashboard(cw, contentH int) string {
	var b strings.Builder

	// Row 1: Metric cards
	countHint := ""
	if len(a.filtered) != a.st.Len() {
		countHint = fmt.Sprintf("of %s total", cli.FormatNumber(int64(a.st.Len())))
	}
	avgHint := ""
	if len(a.daily) > 0 {
		perDay := float64(a.grandTotal) / 100 / float64(len(a.daily))
		avgHint = fmt.Sprintf("%.2f/day over %d day(s)", perDay, len(a.daily))
	}
	cards := []components.Metric{
		{Label: "Records", Value: cli.FormatNumber(int64(len(a.filtered))), Hint: countHint},
		{Label: "Total", Value: cli.FormatAmount(a.grandTotal), Hint: avgHint, Money: true},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Record table
	tableH := contentH - lipgloss.Height(b.String()) - 1
	if tableH < 3 {
		tableH = 3
	}
	b.WriteString(a.renderRecordTable(cw, tableH))

	return b.String()
}

// Column widths for the record table. Note takes the remainder.
const (
	colDate     = 12
	colCategory = 15
	colAmount   = 12
)

// renderRecordTable renders the scrolling record list with the cursor row
// highlighted. height is the number of lines available including the
// header row.
func (a *App) renderRecordTable(cw, height int) string {
	t := theme.Active

	headerStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Bold(true)

	rowStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary)

	noteStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.SurfaceHover).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	noteW := cw - colDate - colCategory - colAmount - 2
	if noteW < 8 {
		noteW = 8
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s%-*s%*s  %-*s",
		colDate, "DATE", colCategory, "CATEGORY", colAmount, "AMOUNT", noteW, "NOTE")))
	b.WriteString("\n")

	if len(a.filtered) == 0 {
		b.WriteString(dimStyle.Render("  No expenses recorded. Press [a] to add one."))
		return b.String()
	}

	visible := height - 1
	if visible < 1 {
		visible = 1
	}

	// Keep the cursor inside the visible window
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+visible {
		a.offset = a.cursor - visible + 1
	}
	end := a.offset + visible
	if end > len(a.filtered) {
		end = len(a.filtered)
	}

	for i := a.offset; i < end; i++ {
		r := a.filtered[i]
		head := fmt.Sprintf(" %-*s%-*s%*s  ",
			colDate, r.Date.Format(model.DateFormat),
			colCategory, truncStr(string(r.Category), colCategory-1),
			colAmount, cli.FormatAmount(r.Amount))
		note := fmt.Sprintf("%-*s", noteW, truncStr(r.Note, noteW))

		if i == a.cursor {
			b.WriteString(selectedStyle.Render(head + note))
		} else {
			// Dim the note so the amounts stand out
			b.WriteString(rowStyle.Render(head))
			b.WriteString(noteStyle.Render(note))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(a.filtered) {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(a.filtered)-end)))
	}

	return b.String()
}

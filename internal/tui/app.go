// Package tui provides the interactive Bubble Tea interface for outgo.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"outgo/internal/model"
	"outgo/internal/pipeline"
	"outgo/internal/store"
	"outgo/internal/tui/components"
	"outgo/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Views.
const (
	viewDashboard = iota
	viewAnalytics
)

// Filter input focus.
const (
	filterNone = iota
	filterYear
	filterMonth
)

// App is the root Bubble Tea model. The store is loaded synchronously
// before the program starts; the app only ever sees a ready store.
type App struct {
	st *store.Store

	// Filter state
	year  *int
	month *time.Month

	// Pre-computed for current filter
	filtered   []model.Record
	grandTotal model.Cents
	daily      []model.DailyTotal
	trend      model.TrendLine
	monthly    []model.MonthlyTotal
	categories []model.CategoryTotal

	// UI state
	width     int
	height    int
	view      int
	activeTab int
	cursor    int // index into filtered
	offset    int // first visible table row
	showHelp  bool
	status    string

	// Filter editing
	filterFocus int
	filterInput textinput.Model

	// Modal form (add/edit/delete/import/...)
	form        *huh.Form
	formPurpose formPurpose
	formVals    formValues
	editIndex   int // store index being edited, -1 otherwise
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140

	minContentHeight = 5
)

// NewApp creates the TUI model around an already-loaded store.
func NewApp(st *store.Store, year *int, month *time.Month) App {
	a := App{
		st:        st,
		year:      year,
		month:     month,
		editIndex: -1,
	}
	if n := len(st.Warnings()); n > 0 {
		a.status = fmt.Sprintf("Skipped %d malformed row(s) in %s", n, st.Path())
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// recompute refreshes every derived view after a filter or data change.
func (a *App) recompute() {
	a.filtered = pipeline.Filter(a.st.Records(), a.year, a.month)
	a.grandTotal = pipeline.GrandTotal(a.filtered)
	a.daily = pipeline.AggregateDaily(a.filtered)
	a.trend = pipeline.FitTrend(a.daily)
	a.monthly = pipeline.AggregateMonthly(a.filtered)
	a.categories = pipeline.AggregateCategories(a.filtered)

	// Clamp cursor to the new filtered list bounds
	if a.cursor >= len(a.filtered) {
		a.cursor = len(a.filtered) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.offset > a.cursor {
		a.offset = a.cursor
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width-8, 64))
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.view == viewDashboard && a.cursor > 0 {
				a.cursor--
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.view == viewDashboard && a.cursor < len(a.filtered)-1 {
				a.cursor++
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar occupies the first analytics line
			if a.view == viewAnalytics && msg.Y <= 1 {
				if tab := components.TabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Modal form intercepts all keys
		if a.form != nil {
			return a.updateForm(msg)
		}

		// Filter input intercepts all keys
		if a.filterFocus != filterNone {
			return a.updateFilterInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		return a.updateKeys(key)
	}

	// Forward unhandled messages (cursor blinks, etc.) to whichever
	// input currently has focus.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.filterFocus != filterNone {
		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		if a.view == viewAnalytics {
			a.view = viewDashboard
			return a, nil
		}
		return a, tea.Quit

	case "v":
		if a.view == viewDashboard {
			a.view = viewAnalytics
		} else {
			a.view = viewDashboard
		}
		return a, nil

	case "y":
		return a.startFilterInput(filterYear)

	case "m":
		return a.startFilterInput(filterMonth)

	case "esc":
		if a.year != nil || a.month != nil {
			a.year = nil
			a.month = nil
			a.status = "Filters cleared"
			a.recompute()
		} else if a.view == viewAnalytics {
			a.view = viewDashboard
		}
		return a, nil
	}

	if a.view == viewAnalytics {
		switch key {
		case "1", "2", "3":
			a.activeTab = int(key[0] - '1')
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil
	}

	// Dashboard keys
	switch key {
	case "j", "down":
		if a.cursor < len(a.filtered)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g":
		a.cursor = 0
		a.offset = 0
	case "G":
		a.cursor = len(a.filtered) - 1
		if a.cursor < 0 {
			a.cursor = 0
		}
	case "a":
		return a.openAddForm()
	case "e", "enter":
		return a.openEditForm()
	case "d":
		return a.openDeleteForm()
	case "C":
		return a.openClearForm()
	case "i":
		return a.openImportForm()
	case "x":
		return a.openExportForm()
	case "b":
		return a.openBackupForm()
	}
	return a, nil
}

// ─── Filter Input ───────────────────────────────────────────────

func (a App) startFilterInput(focus int) (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.CharLimit = 4
	ti.Width = 6
	switch focus {
	case filterYear:
		ti.Placeholder = "2024"
		if a.year != nil {
			ti.SetValue(strconv.Itoa(*a.year))
		}
	case filterMonth:
		ti.Placeholder = "1-12"
		ti.CharLimit = 2
		if a.month != nil {
			ti.SetValue(strconv.Itoa(int(*a.month)))
		}
	}
	ti.Focus()
	a.filterFocus = focus
	a.filterInput = ti
	return a, textinput.Blink
}

func (a App) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		val := strings.TrimSpace(a.filterInput.Value())
		switch a.filterFocus {
		case filterYear:
			y, err := ParseYearFilter(val)
			if err != nil {
				a.status = err.Error()
			} else {
				a.year = y
			}
		case filterMonth:
			m, err := ParseMonthFilter(val)
			if err != nil {
				a.status = err.Error()
			} else {
				a.month = m
			}
		}
		a.filterFocus = filterNone
		a.recompute()
		return a, nil

	case "esc":
		a.filterFocus = filterNone
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	return a, cmd
}

// ParseYearFilter parses a year filter value. Empty clears the filter.
func ParseYearFilter(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1 || y > 9999 {
		return nil, fmt.Errorf("invalid year %q", s)
	}
	return &y, nil
}

// ParseMonthFilter parses a month filter value (1-12). Empty clears the
// filter.
func ParseMonthFilter(s string) (*time.Month, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return nil, fmt.Errorf("invalid month %q, want 1-12", s)
	}
	m := time.Month(n)
	return &m, nil
}

// ─── Layout helpers ─────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  outgo needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Records"))
	b.WriteString("\n")
	recordBindings := []struct{ key, desc string }{
		{"j k", "Move selection"},
		{"g G", "First / Last record"},
		{"a", "Add expense"},
		{"e Enter", "Edit selected"},
		{"d", "Delete selected"},
		{"C", "Clear all records"},
	}
	for _, bind := range recordBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Views & Filters"))
	b.WriteString("\n")
	viewBindings := []struct{ key, desc string }{
		{"v", "Toggle analytics"},
		{"1 2 3", "Analytics tab"},
		{"← →", "Previous / Next tab"},
		{"y", "Year filter"},
		{"m", "Month filter"},
		{"Esc", "Clear filters / Back"},
	}
	for _, bind := range viewBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("File"))
	b.WriteString("\n")
	fileBindings := []struct{ key, desc string }{
		{"i", "Import CSV"},
		{"x", "Export CSV"},
		{"b", "Backup"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range fileBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := a.renderHeader(w)
	statusBar := components.RenderStatusBar(w, a.status, a.st.Path())

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.view {
	case viewDashboard:
		content = a.renderDashboard(cw, contentH)
	case viewAnalytics:
		content = a.renderAnalytics(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderHeader renders the title/tab row plus the filter pill row.
func (a App) renderHeader(w int) string {
	t := theme.Active

	var top string
	if a.view == viewAnalytics {
		top = components.RenderTabBar(a.activeTab, w)
	} else {
		titleStyle := lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Bold(true)
		subStyle := lipgloss.NewStyle().
			Foreground(t.TextDim)
		top = lipgloss.NewStyle().Width(w).Render(
			" " + titleStyle.Render("◈ outgo") + subStyle.Render(" · Expense Tracker"))
	}

	filterPillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	filterAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	filterStr := filterPillStyle.Render(" year:")
	switch {
	case a.filterFocus == filterYear:
		filterStr += a.filterInput.View()
	case a.year != nil:
		filterStr += filterAccentStyle.Render(strconv.Itoa(*a.year))
	default:
		filterStr += filterPillStyle.Render("all")
	}
	filterStr += filterPillStyle.Render("  month:")
	switch {
	case a.filterFocus == filterMonth:
		filterStr += a.filterInput.View()
	case a.month != nil:
		filterStr += filterAccentStyle.Render(a.month.String())
	default:
		filterStr += filterPillStyle.Render("all")
	}
	filterStr += filterPillStyle.Render(" ")

	filterRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	return top + "\n" + filterRowStyle.Render(filterStr)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"outgo/internal/cli"
	"outgo/internal/model"
	"outgo/internal/pipeline"
	"outgo/internal/tui/components"
	"outgo/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderAnalytics renders the active analytics tab.
func (a *App) renderAnalytics(cw, contentH int) string {
	switch a.activeTab {
	case 0:
		return a.renderTrendTab(cw, contentH)
	case 1:
		return a.renderMonthlyTab(cw, contentH)
	case 2:
		return a.renderCategoryTab(cw, contentH)
	}
	return ""
}

func (a *App) renderTrendTab(cw, contentH int) string {
	t := theme.Active

	if len(a.daily) == 0 {
		return a.renderNoData(cw)
	}

	vals := make([]float64, len(a.daily))
	labels := make([]string, len(a.daily))
	for i, d := range a.daily {
		vals[i] = d.Total.Float()
		labels[i] = d.Date.Format(model.DateFormat)
	}

	var trendVals []float64
	if a.trend.OK {
		trendVals = make([]float64, len(a.daily))
		for i := range trendVals {
			trendVals[i] = a.trend.At(i)
		}
	}

	chartH := contentH - 7 // card chrome + caption
	if chartH < 4 {
		chartH = 4
	}
	if chartH > 16 {
		chartH = 16
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(
		"Daily Spending",
		components.LinePlot(vals, trendVals, labels, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	captionStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	accentStyle := lipgloss.NewStyle().Foreground(t.Orange)
	if a.trend.OK {
		direction := "rising"
		if a.trend.Slope < 0 {
			direction = "falling"
		}
		b.WriteString(captionStyle.Render(" Trend: "))
		b.WriteString(accentStyle.Render(fmt.Sprintf("%+.2f/day", a.trend.Slope)))
		b.WriteString(captionStyle.Render(fmt.Sprintf(" (%s) over %d spending day(s)", direction, len(a.daily))))
	} else {
		b.WriteString(captionStyle.Render(" Not enough days for a trend line"))
	}

	return b.String()
}

func (a *App) renderMonthlyTab(cw, contentH int) string {
	t := theme.Active

	if len(a.monthly) == 0 {
		return a.renderNoData(cw)
	}

	vals := make([]float64, len(a.monthly))
	for i, m := range a.monthly {
		vals[i] = m.Total.Float()
	}
	labels := monthChartLabels(a.monthly)

	chartH := contentH - 5
	if chartH < 4 {
		chartH = 4
	}
	if chartH > 16 {
		chartH = 16
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(
		"Monthly Totals",
		components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), chartH),
		cw,
	))

	// Peak month caption
	peak := a.monthly[0]
	for _, m := range a.monthly[1:] {
		if m.Total > peak.Total {
			peak = m
		}
	}
	captionStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	b.WriteString("\n")
	b.WriteString(captionStyle.Render(fmt.Sprintf(" Peak: %s (%s)",
		cli.FormatMonthName(peak.Year, peak.Month), cli.FormatAmount(peak.Total))))

	return b.String()
}

func (a *App) renderCategoryTab(cw, contentH int) string {
	t := theme.Active

	if len(a.categories) == 0 {
		return a.renderNoData(cw)
	}

	// Largest slices get their own bar; the tail collapses into "Other"
	top := pipeline.TopCategories(a.categories, 6)

	labels := make([]string, len(top))
	shares := make([]float64, len(top))
	details := make([]string, len(top))
	total := a.grandTotal
	for i, c := range top {
		labels[i] = string(c.Category)
		if total > 0 {
			shares[i] = float64(c.Total) / float64(total)
		}
		details[i] = fmt.Sprintf("%s · %s", cli.FormatAmount(c.Total), cli.FormatPercent(shares[i]))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(
		"By Category",
		components.DistributionBars(labels, shares, details, components.CardInnerWidth(cw)),
		cw,
	))

	captionStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	b.WriteString("\n")
	b.WriteString(captionStyle.Render(fmt.Sprintf(" %d categories, %s total",
		len(a.categories), cli.FormatAmount(total))))

	return b.String()
}

func (a *App) renderNoData(cw int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	return components.ContentCard("", dimStyle.Render("No data for the current filter."), cw)
}

// monthChartLabels builds compact X-axis labels for a chronological month
// series: month abbreviation, with the two-digit year appended on the
// first label and on January.
func monthChartLabels(months []model.MonthlyTotal) []string {
	labels := make([]string, len(months))
	for i, m := range months {
		abbr := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan")
		if i == 0 || m.Month == time.January {
			labels[i] = fmt.Sprintf("%s'%02d", abbr, m.Year%100)
		} else {
			labels[i] = abbr
		}
	}
	return labels
}

package components

import (
	"strings"
	"testing"

	"outgo/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func TestLayoutRowSumsExactly(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{100, 3},
		{101, 3},
		{80, 2},
		{7, 4},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}

	if got := LayoutRow(50, 0); got != nil {
		t.Errorf("LayoutRow with n=0 = %v, want nil", got)
	}
}

func TestMetricCardMoneyAccent(t *testing.T) {
	plain := MetricCard(Metric{Label: "Total", Value: "1,234.56"}, 24)
	money := MetricCard(Metric{Label: "Total", Value: "1,234.56", Money: true}, 24)

	if !strings.Contains(plain, "1,234.56") || !strings.Contains(money, "1,234.56") {
		t.Fatal("cards missing their values")
	}
	// The money register colors the value differently
	if plain == money {
		t.Error("money value rendered with the same style as a plain value")
	}

	row := MetricCardRow([]Metric{{Label: "A", Value: "1"}, {Label: "B", Value: "2"}}, 50)
	if got := lipgloss.Width(row); got != 50 {
		t.Errorf("row width = %d, want 50", got)
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	tallLines := len(strings.Split(tallCard, "\n"))

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want tallest card height %d", len(lines), tallLines)
	}
}

func TestSparkline(t *testing.T) {
	th := theme.Active

	if got := Sparkline(nil, th.Accent); got != "" {
		t.Errorf("empty sparkline = %q", got)
	}

	s := Sparkline([]float64{0, 50, 100}, th.Accent)
	if !strings.Contains(s, "█") {
		t.Error("peak value should render a full block")
	}
	if !strings.Contains(s, "▁") {
		t.Error("zero value should render the smallest block")
	}
}

func TestBarChartEmptyAndTiny(t *testing.T) {
	th := theme.Active

	if got := BarChart(nil, nil, th.Blue, 80, 10); got != "" {
		t.Errorf("empty chart = %q", got)
	}

	// A tiny area falls back to a sparkline (single line, no axis)
	got := BarChart([]float64{1, 2, 3}, nil, th.Blue, 10, 2)
	if strings.Contains(got, "└") {
		t.Error("tiny chart should not draw an axis")
	}
}

func TestLinePlotMarksPointsAndTrend(t *testing.T) {
	vals := []float64{10, 20, 30, 40}
	trend := []float64{10, 20, 30, 40}
	labels := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}

	out := LinePlot(vals, trend, labels, 60, 10)
	if !strings.Contains(out, "●") {
		t.Error("plot should contain point markers")
	}
	if !strings.Contains(out, "2024-01-01") {
		t.Error("plot should label the first date")
	}
	if !strings.Contains(out, "2024-01-04") {
		t.Error("plot should label the last date")
	}

	if got := LinePlot(nil, nil, nil, 60, 10); got != "" {
		t.Errorf("empty plot = %q", got)
	}
}

func TestDistributionBars(t *testing.T) {
	labels := []string{"Rent", "Food", "Other"}
	shares := []float64{0.5, 0.3, 0.2}
	details := []string{"500.00 · 50%", "300.00 · 30%", "200.00 · 20%"}

	out := DistributionBars(labels, shares, details, 60)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, l := range labels {
		if !strings.Contains(lines[i], l) {
			t.Errorf("line %d missing label %q", i, l)
		}
		if !strings.Contains(lines[i], details[i]) {
			t.Errorf("line %d missing detail %q", i, details[i])
		}
	}

	if got := DistributionBars(nil, nil, nil, 60); got != "" {
		t.Errorf("empty input = %q", got)
	}
}

func TestChartTickStep(t *testing.T) {
	cases := []struct {
		max  float64
		want float64
	}{
		{10, 2},
		{100, 20},
		{25, 5},
		{7, 1},
		{0, 1},
	}
	for _, tc := range cases {
		if got := chartTickStep(tc.max); got != tc.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tc.max, got, tc.want)
		}
	}
}

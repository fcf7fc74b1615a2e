package tui

import (
	"testing"
	"time"

	"outgo/internal/model"
	"outgo/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab)
		x := pos + w/2 // midpoint inside this tab
		if got := components.TabAtX(x); got != i {
			t.Fatalf("x=%d -> tab=%d, want %d", x, got, i)
		}
		pos += w + 3 // separator
	}

	if got := components.TabAtX(0); got != -1 {
		t.Errorf("TabAtX(0) = %d, want -1", got)
	}
	if got := components.TabAtX(pos + 50); got != -1 {
		t.Errorf("TabAtX far right = %d, want -1", got)
	}
}

func TestParseYearFilter(t *testing.T) {
	y, err := ParseYearFilter("2024")
	if err != nil || y == nil || *y != 2024 {
		t.Fatalf("ParseYearFilter(2024) = %v, %v", y, err)
	}

	y, err = ParseYearFilter("")
	if err != nil || y != nil {
		t.Fatalf("empty should clear the filter, got %v, %v", y, err)
	}

	for _, bad := range []string{"abc", "0", "-5", "20x4"} {
		if _, err := ParseYearFilter(bad); err == nil {
			t.Errorf("ParseYearFilter(%q) accepted", bad)
		}
	}
}

func TestParseMonthFilter(t *testing.T) {
	m, err := ParseMonthFilter("3")
	if err != nil || m == nil || *m != time.March {
		t.Fatalf("ParseMonthFilter(3) = %v, %v", m, err)
	}

	m, err = ParseMonthFilter("")
	if err != nil || m != nil {
		t.Fatalf("empty should clear the filter, got %v, %v", m, err)
	}

	for _, bad := range []string{"0", "13", "jan", "-1"} {
		if _, err := ParseMonthFilter(bad); err == nil {
			t.Errorf("ParseMonthFilter(%q) accepted", bad)
		}
	}
}

func TestMonthChartLabels(t *testing.T) {
	months := []model.MonthlyTotal{
		{Year: 2023, Month: time.November, Total: 100},
		{Year: 2023, Month: time.December, Total: 100},
		{Year: 2024, Month: time.January, Total: 100},
		{Year: 2024, Month: time.February, Total: 100},
	}
	got := monthChartLabels(months)
	want := []string{"Nov'23", "Dec", "Jan'24", "Feb"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("hello", 10); got != "hello" {
		t.Errorf("no-op trunc = %q", got)
	}
	if got := truncStr("hello world", 6); got != "hello…" {
		t.Errorf("trunc = %q", got)
	}
	if got := truncStr("hello", 0); got != "" {
		t.Errorf("zero limit = %q", got)
	}
}

package pipeline

import (
	"testing"
	"time"

	"outgo/internal/model"
)

func rec(t *testing.T, date, category, amount string) model.Record {
	t.Helper()
	r, err := model.NewRecord(date, category, amount, "")
	if err != nil {
		t.Fatalf("record fixture %s/%s/%s: %v", date, category, amount, err)
	}
	return r
}

func intp(v int) *int                 { return &v }
func monthp(m time.Month) *time.Month { return &m }

func TestFilterIdentity(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-03-01", "Food", "10.00"),
		rec(t, "2023-12-31", "Rent", "800.00"),
	}
	got := Filter(records, nil, nil)
	if len(got) != len(records) {
		t.Fatalf("identity filter changed length: %d", len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("identity filter reordered records at %d", i)
		}
	}
}

func TestFilterYearAndMonth(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-03-01", "Food", "10.00"),
		rec(t, "2024-03-15", "Rent", "800.00"),
		rec(t, "2024-04-01", "Food", "5.00"),
		rec(t, "2023-03-02", "Food", "7.00"),
	}

	got := Filter(records, intp(2024), monthp(time.March))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, r := range got {
		if r.Date.Year() != 2024 || r.Date.Month() != time.March {
			t.Fatalf("filter leaked record %v", r.Date)
		}
	}
	// Order preserved.
	if got[0].Category != model.CategoryFood || got[1].Category != model.CategoryRent {
		t.Fatal("filter reordered records")
	}
}

func TestFilterYearOnlyAndMonthOnly(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-03-01", "Food", "10.00"),
		rec(t, "2023-03-02", "Food", "7.00"),
		rec(t, "2024-04-01", "Food", "5.00"),
	}

	if got := Filter(records, intp(2024), nil); len(got) != 2 {
		t.Fatalf("year-only len = %d, want 2", len(got))
	}
	if got := Filter(records, nil, monthp(time.March)); len(got) != 2 {
		t.Fatalf("month-only len = %d, want 2", len(got))
	}
	if got := Filter(records, intp(1999), nil); len(got) != 0 {
		t.Fatalf("no-match len = %d, want 0", len(got))
	}
}

func TestGrandTotal(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-03-01", "Food", "10.00"),
		rec(t, "2024-03-02", "Rent", "0.01"),
	}
	if got := GrandTotal(records); got != 1001 {
		t.Fatalf("GrandTotal = %d, want 1001", got)
	}
	if got := GrandTotal(nil); got != 0 {
		t.Fatalf("GrandTotal(nil) = %d, want 0", got)
	}
}

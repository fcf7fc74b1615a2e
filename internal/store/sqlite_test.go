package store

import (
	"path/filepath"
	"testing"

	"outgo/internal/model"
)

func tempSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := tempSQLite(t)
	s, err := Open(repo)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	want := []model.Record{
		mustRecord(t, "2024-03-01", "Rent", "800.00", "march rent"),
		mustRecord(t, "2024-03-02", "Food", "12.50", ""),
		mustRecord(t, "2024-03-03", "Travel", "99.99", "train"),
	}
	for _, r := range want {
		if err := s.Add(r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	got, warnings, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Date) ||
			got[i].Category != want[i].Category ||
			got[i].Amount != want[i].Amount ||
			got[i].Note != want[i].Note {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSQLitePreservesOrderAcrossMutations(t *testing.T) {
	repo := tempSQLite(t)
	s, err := Open(repo)
	if err != nil {
		t.Fatal(err)
	}

	for _, amt := range []string{"1.00", "2.00", "3.00", "4.00"} {
		if err := s.Add(mustRecord(t, "2024-01-01", "Food", amt, "")); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Delete(1); err != nil {
		t.Fatal(err)
	}

	got, _, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	amounts := make([]model.Cents, len(got))
	for i, r := range got {
		amounts[i] = r.Amount
	}
	want := []model.Cents{100, 300, 400}
	for i := range want {
		if amounts[i] != want[i] {
			t.Fatalf("amounts = %v, want %v", amounts, want)
		}
	}
}

func TestSQLiteClear(t *testing.T) {
	repo := tempSQLite(t)
	s, err := Open(repo)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(mustRecord(t, "2024-01-01", "Food", "1.00", "")); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("records after clear = %d, want 0", len(got))
	}
}

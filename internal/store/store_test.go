package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"outgo/internal/model"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expenses.csv")
	s, err := Open(NewCSV(path))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, path
}

func mustRecord(t *testing.T, date, category, amount, note string) model.Record {
	t.Helper()
	r, err := model.NewRecord(date, category, amount, note)
	if err != nil {
		t.Fatalf("NewRecord(%s, %s, %s): %v", date, category, amount, err)
	}
	return r
}

func TestAddThenLoadRoundTrip(t *testing.T) {
	s, path := tempStore(t)

	rec := mustRecord(t, "2024-01-05", "Food", "25.00", "lunch")
	if err := s.Add(rec); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Reload from disk through a fresh store.
	s2, err := Open(NewCSV(path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if s2.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s2.Len())
	}
	got := s2.Records()[0]
	if got.Date.Format(model.DateFormat) != "2024-01-05" ||
		got.Category != model.CategoryFood ||
		got.Amount != 2500 ||
		got.Note != "lunch" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	// Field serialization is byte-stable.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "date,category,amount,note\n2024-01-05,Food,25.00,lunch\n"
	if string(data) != want {
		t.Fatalf("file = %q, want %q", data, want)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	s, path := tempStore(t)
	if err := s.Add(mustRecord(t, "2024-01-05", "Food", "1.00", "")); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

// brokenRepo accepts the first save and fails every one after, standing in
// for a disk-full or permission error mid-session.
type brokenRepo struct {
	inner Repository
	saves int
}

func (b *brokenRepo) Load() ([]model.Record, []RowError, error) { return b.inner.Load() }
func (b *brokenRepo) Path() string                              { return b.inner.Path() }

func (b *brokenRepo) Save(records []model.Record) error {
	b.saves++
	if b.saves > 1 {
		return ErrWrite
	}
	return b.inner.Save(records)
}

func TestSaveFailureKeepsOldContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	s, err := Open(&brokenRepo{inner: NewCSV(path)})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(mustRecord(t, "2024-01-05", "Food", "1.00", "")); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	err = s.Add(mustRecord(t, "2024-01-06", "Rent", "2.00", ""))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("err = %v, want ErrWrite", err)
	}

	// In-memory state still matches disk.
	if s.Len() != 1 {
		t.Fatalf("Len = %d after failed save, want 1", s.Len())
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(before) {
		t.Fatalf("backing file changed after failed save")
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	content := strings.Join([]string{
		"date,category,amount,note",
		"2024-01-05,Food,25.00,lunch",
		"not-a-date,Food,1.00,bad date",
		"2024-01-06,Nonsense,1.00,bad category",
		"2024-01-07,Rent,abc,bad amount",
		"2024-01-08,Rent,800.00,ok",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(NewCSV(path))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (malformed rows skipped)", s.Len())
	}
	if len(s.Warnings()) != 3 {
		t.Fatalf("Warnings = %d, want 3", len(s.Warnings()))
	}
}

func TestMissingFileStartsEmpty(t *testing.T) {
	s, err := Open(NewCSV(filepath.Join(t.TempDir(), "absent.csv")))
	if err != nil {
		t.Fatalf("Open on missing file: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestUpdateAndDeleteByPosition(t *testing.T) {
	s, _ := tempStore(t)
	for _, r := range []model.Record{
		mustRecord(t, "2024-01-01", "Rent", "800.00", ""),
		mustRecord(t, "2024-01-02", "Food", "12.00", ""),
		mustRecord(t, "2024-01-03", "Travel", "99.00", ""),
	} {
		if err := s.Add(r); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Update(1, mustRecord(t, "2024-01-02", "Groceries", "15.50", "edited")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := s.Records()[1]; got.Category != model.CategoryGroceries || got.Amount != 1550 {
		t.Fatalf("Update did not replace in place: %+v", got)
	}

	if err := s.Delete(0); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Len() != 2 || s.Records()[0].Category != model.CategoryGroceries {
		t.Fatalf("Delete shifted wrong rows: %+v", s.Records())
	}

	if err := s.Update(99, mustRecord(t, "2024-01-02", "Food", "1.00", "")); !errors.Is(err, ErrIndex) {
		t.Fatalf("out-of-range Update err = %v, want ErrIndex", err)
	}
	if err := s.Delete(-1); !errors.Is(err, ErrIndex) {
		t.Fatalf("out-of-range Delete err = %v, want ErrIndex", err)
	}
}

func TestClearWritesHeaderOnlyFile(t *testing.T) {
	s, path := tempStore(t)
	if err := s.Add(mustRecord(t, "2024-01-05", "Food", "25.00", "")); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "date,category,amount,note\n" {
		t.Fatalf("cleared file = %q, want header only", data)
	}
}

func TestExportThenImportRoundTrip(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.Add(mustRecord(t, "2024-01-05", "Food", "25.00", "lunch")); err != nil {
		t.Fatal(err)
	}

	exportPath := filepath.Join(t.TempDir(), "export.csv")
	if err := s.ExportTo(exportPath); err != nil {
		t.Fatalf("ExportTo: %v", err)
	}

	fresh, _ := tempStore(t)
	imported, skipped, err := fresh.ImportFrom(exportPath)
	if err != nil {
		t.Fatalf("ImportFrom: %v", err)
	}
	if imported != 1 || skipped != 0 {
		t.Fatalf("imported=%d skipped=%d, want 1/0", imported, skipped)
	}
	got := fresh.Records()[0]
	if got.Date.Format(model.DateFormat) != "2024-01-05" ||
		got.Category != model.CategoryFood ||
		got.Amount != 2500 ||
		got.Note != "lunch" {
		t.Fatalf("re-imported record mismatch: %+v", got)
	}
}

func TestImportMissingColumnFailsBeforeMutation(t *testing.T) {
	s, path := tempStore(t)
	if err := s.Add(mustRecord(t, "2024-01-05", "Food", "25.00", "keep me")); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	badPath := filepath.Join(t.TempDir(), "bad.csv")
	bad := "date,category,note\n2024-02-01,Rent,missing amount\n"
	if err := os.WriteFile(badPath, []byte(bad), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err = s.ImportFrom(badPath)
	var ife *ImportFormatError
	if !errors.As(err, &ife) {
		t.Fatalf("err = %v, want *ImportFormatError", err)
	}
	if len(ife.Missing) != 1 || ife.Missing[0] != "amount" {
		t.Fatalf("Missing = %v, want [amount]", ife.Missing)
	}

	// Store and backing file untouched.
	if s.Len() != 1 || s.Records()[0].Note != "keep me" {
		t.Fatalf("store mutated by failed import: %+v", s.Records())
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(before) {
		t.Fatal("backing file mutated by failed import")
	}
}

func TestImportReplacesAndSkipsJunkRows(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.Add(mustRecord(t, "2020-01-01", "Rent", "1.00", "old")); err != nil {
		t.Fatal(err)
	}

	// Columns in a different order, plus one junk row.
	importPath := filepath.Join(t.TempDir(), "in.csv")
	content := strings.Join([]string{
		"amount,note,date,category",
		"10.00,a,2024-03-01,Food",
		"garbage,b,2024-03-02,Food",
		"20.00,c,2024-03-03,Transport",
	}, "\n") + "\n"
	if err := os.WriteFile(importPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	imported, skipped, err := s.ImportFrom(importPath)
	if err != nil {
		t.Fatalf("ImportFrom: %v", err)
	}
	if imported != 2 || skipped != 1 {
		t.Fatalf("imported=%d skipped=%d, want 2/1", imported, skipped)
	}
	if s.Len() != 2 || s.Records()[0].Note != "a" {
		t.Fatalf("import did not replace the set: %+v", s.Records())
	}
}

func TestBackupDefaultsToTimestampedSibling(t *testing.T) {
	s, path := tempStore(t)
	if err := s.Add(mustRecord(t, "2024-01-05", "Food", "25.00", "")); err != nil {
		t.Fatal(err)
	}

	dest, err := s.BackupTo("")
	if err != nil {
		t.Fatalf("BackupTo: %v", err)
	}
	if filepath.Dir(dest) != filepath.Dir(path) {
		t.Fatalf("backup dir = %s, want sibling of %s", dest, path)
	}
	if !strings.HasPrefix(filepath.Base(dest), "expenses-") || !strings.HasSuffix(dest, ".csv") {
		t.Fatalf("backup name = %s", dest)
	}

	orig, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	copied, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(orig) != string(copied) {
		t.Fatal("backup content differs from backing file")
	}
}

func TestBackupPathFormat(t *testing.T) {
	now := time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC)
	got := backupPath("/data/expenses.csv", now)
	if got != "/data/expenses-20240105-153000.csv" {
		t.Fatalf("backupPath = %s", got)
	}
}

func TestNoteWithCommasAndQuotes(t *testing.T) {
	s, path := tempStore(t)
	rec := mustRecord(t, "2024-01-05", "Food", "9.99", `dinner, "fancy" place`)
	if err := s.Add(rec); err != nil {
		t.Fatal(err)
	}
	s2, err := Open(NewCSV(path))
	if err != nil {
		t.Fatal(err)
	}
	if got := s2.Records()[0].Note; got != `dinner, "fancy" place` {
		t.Fatalf("Note = %q", got)
	}
}

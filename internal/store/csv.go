package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"outgo/internal/model"
)

// csvHeader is the fixed column order of the backing file.
var csvHeader = []string{"date", "category", "amount", "note"}

// requiredColumns must be present in an import file's header. note is
// optional and defaults to empty.
var requiredColumns = []string{"date", "category", "amount"}

// CSVRepository persists records to a flat CSV file, the default backend.
type CSVRepository struct {
	path string
}

// NewCSV returns a CSV repository backed by path.
func NewCSV(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

// Path returns the backing file location.
func (r *CSVRepository) Path() string { return r.path }

// Load reads the backing file. A missing file yields an empty set; rows that
// fail to parse are skipped and reported as RowErrors.
func (r *CSVRepository) Load() ([]model.Record, []RowError, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, validate per row below

	var (
		records  []model.Record
		warnings []RowError
		line     int
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, RowError{Line: line, Err: err})
			continue
		}
		if line == 1 && isHeaderRow(row) {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			warnings = append(warnings, RowError{Line: line, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, warnings, nil
}

// Save atomically rewrites the backing file: write a temp file in the same
// directory, sync it, then rename over the original. A crash mid-write
// leaves the previous contents intact.
func (r *CSVRepository) Save(records []model.Record) error {
	return writeCSVFile(r.path, records)
}

func writeCSVFile(path string, records []model.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	cw := csv.NewWriter(tmp)
	if err := cw.Write(csvHeader); err != nil {
		cleanup()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for _, rec := range records {
		row := []string{
			rec.Date.Format(model.DateFormat),
			string(rec.Category),
			rec.Amount.String(),
			rec.Note,
		}
		if err := cw.Write(row); err != nil {
			cleanup()
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		cleanup()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// ReadImportFile parses an external CSV file. Columns are matched by header
// name so exported files from other tools import cleanly regardless of
// column order. Rows that fail to parse are skipped and counted.
func ReadImportFile(path string) (records []model.Record, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRead, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, 0, &ImportFormatError{Missing: missing}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rec, err := model.NewRecord(
			field(row, "date"),
			field(row, "category"),
			field(row, "amount"),
			field(row, "note"),
		)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "date")
}

func parseRow(row []string) (model.Record, error) {
	if len(row) < 3 {
		return model.Record{}, fmt.Errorf("want at least 3 columns, got %d", len(row))
	}
	note := ""
	if len(row) > 3 {
		note = row[3]
	}
	return model.NewRecord(row[0], row[1], row[2], note)
}

// backupPath builds the default timestamped backup location next to the
// backing file, e.g. expenses-20240105-153000.csv.
func backupPath(base string, now time.Time) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".csv"
	}
	return fmt.Sprintf("%s-%s%s", stem, now.Format("20060102-150405"), ext)
}

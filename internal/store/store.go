// Package store owns expense persistence: a repository abstraction over the
// backing file, an in-memory working set, and whole-file import/export/backup.
package store

import (
	"fmt"
	"time"

	"outgo/internal/model"
)

// Repository reads and writes the full record set. Save must be atomic: a
// failed write leaves the previous contents readable.
type Repository interface {
	Load() ([]model.Record, []RowError, error)
	Save([]model.Record) error
	Path() string
}

// Store is the single owner of the in-memory record list. Every mutation is
// an in-memory transform followed by an immediate Save; when Save fails the
// in-memory list is left matching what is on disk.
type Store struct {
	repo     Repository
	records  []model.Record
	warnings []RowError
}

// Open loads the record set from the repository. An unreadable backing file
// is not fatal: the store starts empty and the error is returned alongside
// it so the caller can surface a warning.
func Open(repo Repository) (*Store, error) {
	s := &Store{repo: repo}
	records, warnings, err := repo.Load()
	if err != nil {
		return s, err
	}
	s.records = records
	s.warnings = warnings
	return s, nil
}

// Records returns the current record set. Callers must not mutate it.
func (s *Store) Records() []model.Record { return s.records }

// Warnings returns per-row problems from the last load.
func (s *Store) Warnings() []RowError { return s.warnings }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Path returns the backing file location.
func (s *Store) Path() string { return s.repo.Path() }

// Add appends a record and persists.
func (s *Store) Add(r model.Record) error {
	next := make([]model.Record, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, r)
	return s.commit(next)
}

// Update replaces the record at index i and persists.
func (s *Store) Update(i int, r model.Record) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	next := make([]model.Record, len(s.records))
	copy(next, s.records)
	next[i] = r
	return s.commit(next)
}

// Delete removes the record at index i and persists.
func (s *Store) Delete(i int) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	next := make([]model.Record, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	return s.commit(next)
}

// Clear empties the store and persists a header-only backing file.
func (s *Store) Clear() error {
	return s.commit([]model.Record{})
}

// ImportFrom replaces the entire record set with the parsed contents of an
// external CSV file. Structural problems (missing required columns) fail
// before any mutation; unparsable rows are skipped. Returns the number of
// imported and skipped rows.
func (s *Store) ImportFrom(path string) (imported, skipped int, err error) {
	records, skipped, err := ReadImportFile(path)
	if err != nil {
		return 0, 0, err
	}
	if err := s.commit(records); err != nil {
		return 0, 0, err
	}
	return len(records), skipped, nil
}

// ExportTo writes the current record set to path in the backing-file format.
// The store is not mutated.
func (s *Store) ExportTo(path string) error {
	return writeCSVFile(path, s.records)
}

// BackupTo writes a copy of the current record set. An empty path picks a
// timestamped sibling of the backing file. Returns the path written.
func (s *Store) BackupTo(path string) (string, error) {
	if path == "" {
		path = backupPath(s.repo.Path(), time.Now())
	}
	if err := writeCSVFile(path, s.records); err != nil {
		return "", err
	}
	return path, nil
}

// commit persists next and swaps it in only on success.
func (s *Store) commit(next []model.Record) error {
	if err := s.repo.Save(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

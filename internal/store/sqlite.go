package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"outgo/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteRepository persists records in an embedded SQLite database. It is the
// optional alternative backend behind the same Repository contract; the
// position column preserves insertion order so row addressing behaves
// exactly like the flat file.
type SQLiteRepository struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteRepository{path: path, db: db}, nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error { return r.db.Close() }

// Path returns the database file location.
func (r *SQLiteRepository) Path() string { return r.path }

// Load reads all records in insertion order. Rows that no longer validate
// (edited by hand, category renamed) are skipped with a RowError.
func (r *SQLiteRepository) Load() ([]model.Record, []RowError, error) {
	rows, err := r.db.Query(`SELECT position, date, category, amount_cents, note
		FROM records ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer func() { _ = rows.Close() }()

	var (
		records  []model.Record
		warnings []RowError
	)
	for rows.Next() {
		var (
			pos     int
			dateStr string
			catStr  string
			amount  int64
			note    string
		)
		if err := rows.Scan(&pos, &dateStr, &catStr, &amount, &note); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrRead, err)
		}
		date, err := model.ParseDate(dateStr)
		if err != nil {
			warnings = append(warnings, RowError{Line: pos, Err: err})
			continue
		}
		cat, err := model.ParseCategory(catStr)
		if err != nil {
			warnings = append(warnings, RowError{Line: pos, Err: err})
			continue
		}
		if amount < 0 {
			warnings = append(warnings, RowError{Line: pos, Err: model.ErrInvalidAmount})
			continue
		}
		records = append(records, model.Record{
			Date:     date,
			Category: cat,
			Amount:   model.Cents(amount),
			Note:     note,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return records, warnings, nil
}

// Save replaces the full record set in one transaction.
func (r *SQLiteRepository) Save(records []model.Record) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for i, rec := range records {
		_, err := tx.Exec(`INSERT INTO records (position, date, category, amount_cents, note)
			VALUES (?, ?, ?, ?, ?)`,
			i, rec.Date.Format(model.DateFormat), string(rec.Category), int64(rec.Amount), rec.Note,
		)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

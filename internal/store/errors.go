package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRead means the backing file exists but could not be read at all.
	ErrRead = errors.New("reading store")
	// ErrWrite means a save could not complete; the previous file contents
	// are still intact.
	ErrWrite = errors.New("writing store")
	// ErrIndex means a mutation addressed a row that does not exist.
	ErrIndex = errors.New("record index out of range")
	// ErrNoSelection means an update/delete was requested with no row selected.
	ErrNoSelection = errors.New("no record selected")
)

// RowError reports a single skipped row during a load or import.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ImportFormatError means an import file is structurally invalid (required
// columns missing from the header). The store is never mutated when this is
// returned.
type ImportFormatError struct {
	Missing []string
}

func (e *ImportFormatError) Error() string {
	return "import file missing required columns: " + strings.Join(e.Missing, ", ")
}

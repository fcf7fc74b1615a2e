package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"outgo/internal/cli"
	"outgo/internal/model"
	"outgo/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// formPurpose says what to do with the form values on completion.
type formPurpose int

const (
	formNone formPurpose = iota
	formAdd
	formEdit
	formDelete
	formClear
	formImport
	formExport
	formBackup
)

// formValues backs the active huh form fields.
type formValues struct {
	date     string
	category string
	amount   string
	note     string
	path     string
	confirm  bool
}

func formWidth(termWidth int) int {
	w := termWidth - 8
	if w > 64 {
		w = 64
	}
	if w < 30 {
		w = 30
	}
	return w
}

// newRecordForm builds the add/edit expense form. Validation reuses the
// same parsers the file loader uses, so a value the form accepts is a
// value the store can persist.
func newRecordForm(vals *formValues, width int) *huh.Form {
	categoryOpts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		categoryOpts[i] = huh.NewOption(string(c), string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&vals.date).
				Validate(func(s string) error {
					_, err := model.ParseDate(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(&vals.category),
			huh.NewInput().
				Title("Amount").
				Description("e.g. 12.50").
				Value(&vals.amount).
				Validate(func(s string) error {
					_, err := model.ParseCents(s)
					return err
				}),
			huh.NewInput().
				Title("Note").
				Description("optional").
				Value(&vals.note),
		),
	).WithWidth(width)
}

// newConfirmForm builds a yes/no confirmation.
func newConfirmForm(title, description string, confirm *bool, width int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(confirm),
		),
	).WithWidth(width)
}

// newPathForm builds a single path input.
func newPathForm(title, description string, path *string, validate func(string) error, width int) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Description(description).
		Value(path)
	if validate != nil {
		input = input.Validate(validate)
	}
	return huh.NewForm(huh.NewGroup(input)).WithWidth(width)
}

// ─── Form openers ───────────────────────────────────────────────

func (a App) openAddForm() (tea.Model, tea.Cmd) {
	a.formVals = formValues{
		date:     time.Now().Format(model.DateFormat),
		category: string(model.CategoryOther),
	}
	a.formPurpose = formAdd
	a.editIndex = -1
	a.form = newRecordForm(&a.formVals, formWidth(a.width))
	return a, a.form.Init()
}

func (a App) openEditForm() (tea.Model, tea.Cmd) {
	idx, ok := a.selectedStoreIndex()
	if !ok {
		a.status = "No record selected"
		return a, nil
	}
	r := a.st.Records()[idx]
	a.formVals = formValues{
		date:     r.Date.Format(model.DateFormat),
		category: string(r.Category),
		amount:   r.Amount.String(),
		note:     r.Note,
	}
	a.formPurpose = formEdit
	a.editIndex = idx
	a.form = newRecordForm(&a.formVals, formWidth(a.width))
	return a, a.form.Init()
}

func (a App) openDeleteForm() (tea.Model, tea.Cmd) {
	idx, ok := a.selectedStoreIndex()
	if !ok {
		a.status = "No record selected"
		return a, nil
	}
	r := a.st.Records()[idx]
	a.formVals = formValues{}
	a.formPurpose = formDelete
	a.editIndex = idx
	a.form = newConfirmForm(
		"Delete this expense?",
		fmt.Sprintf("%s · %s · %s", r.Date.Format(model.DateFormat), r.Category, cli.FormatAmount(r.Amount)),
		&a.formVals.confirm,
		formWidth(a.width),
	)
	return a, a.form.Init()
}

func (a App) openClearForm() (tea.Model, tea.Cmd) {
	if a.st.Len() == 0 {
		a.status = "Nothing to clear"
		return a, nil
	}
	a.formVals = formValues{}
	a.formPurpose = formClear
	a.form = newConfirmForm(
		"Delete ALL expenses?",
		fmt.Sprintf("%d record(s) will be removed from %s", a.st.Len(), a.st.Path()),
		&a.formVals.confirm,
		formWidth(a.width),
	)
	return a, a.form.Init()
}

func (a App) openImportForm() (tea.Model, tea.Cmd) {
	a.formVals = formValues{}
	a.formPurpose = formImport
	w := formWidth(a.width)
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Import CSV").
				Description("Replaces the current record set").
				Placeholder("/path/to/expenses.csv").
				Value(&a.formVals.path).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return errors.New("path required")
					}
					if _, err := os.Stat(s); err != nil {
						return errors.New("file not found")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Replace all current records?").
				Affirmative("Import").
				Negative("Cancel").
				Value(&a.formVals.confirm),
		),
	).WithWidth(w)
	return a, a.form.Init()
}

func (a App) openExportForm() (tea.Model, tea.Cmd) {
	a.formVals = formValues{}
	a.formPurpose = formExport
	a.form = newPathForm(
		"Export CSV",
		"Destination file",
		&a.formVals.path,
		func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("path required")
			}
			return nil
		},
		formWidth(a.width),
	)
	return a, a.form.Init()
}

func (a App) openBackupForm() (tea.Model, tea.Cmd) {
	a.formVals = formValues{}
	a.formPurpose = formBackup
	a.form = newPathForm(
		"Backup",
		"Leave blank for a timestamped copy next to the data file",
		&a.formVals.path,
		nil,
		formWidth(a.width),
	)
	return a, a.form.Init()
}

// selectedStoreIndex maps the cursor (into the filtered view) back to the
// index in the full store. The filter preserves order, so the cursor-th
// filtered row is the cursor-th store record matching the predicate.
func (a App) selectedStoreIndex() (int, bool) {
	if a.cursor < 0 || a.cursor >= len(a.filtered) {
		return 0, false
	}
	seen := 0
	for i, r := range a.st.Records() {
		if a.year != nil && r.Date.Year() != *a.year {
			continue
		}
		if a.month != nil && r.Date.Month() != *a.month {
			continue
		}
		if seen == a.cursor {
			return i, true
		}
		seen++
	}
	return 0, false
}

// ─── Form lifecycle ─────────────────────────────────────────────

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.applyForm()
		a.form = nil
		a.formPurpose = formNone
		a.recompute()
		return a, nil
	}

	if a.form.State == huh.StateAborted {
		a.form = nil
		a.formPurpose = formNone
		a.status = "Cancelled"
		return a, nil
	}

	return a, cmd
}

// applyForm commits the completed form against the store and sets the
// status line.
func (a *App) applyForm() {
	switch a.formPurpose {
	case formAdd, formEdit:
		rec, err := model.NewRecord(a.formVals.date, a.formVals.category, a.formVals.amount, a.formVals.note)
		if err != nil {
			a.status = "Error: " + err.Error()
			return
		}
		if a.formPurpose == formAdd {
			err = a.st.Add(rec)
		} else {
			err = a.st.Update(a.editIndex, rec)
		}
		if err != nil {
			a.status = "Save failed: " + err.Error()
			return
		}
		if a.formPurpose == formAdd {
			a.status = fmt.Sprintf("Added %s %s", cli.FormatAmount(rec.Amount), rec.Category)
		} else {
			a.status = "Updated"
		}

	case formDelete:
		if !a.formVals.confirm {
			a.status = "Cancelled"
			return
		}
		if err := a.st.Delete(a.editIndex); err != nil {
			a.status = "Delete failed: " + err.Error()
			return
		}
		a.status = "Deleted"

	case formClear:
		if !a.formVals.confirm {
			a.status = "Cancelled"
			return
		}
		if err := a.st.Clear(); err != nil {
			a.status = "Clear failed: " + err.Error()
			return
		}
		a.status = "All records cleared"

	case formImport:
		if !a.formVals.confirm {
			a.status = "Cancelled"
			return
		}
		imported, skipped, err := a.st.ImportFrom(strings.TrimSpace(a.formVals.path))
		if err != nil {
			a.status = "Import failed: " + err.Error()
			return
		}
		if skipped > 0 {
			a.status = fmt.Sprintf("Imported %d record(s), skipped %d row(s)", imported, skipped)
		} else {
			a.status = fmt.Sprintf("Imported %d record(s)", imported)
		}

	case formExport:
		path := strings.TrimSpace(a.formVals.path)
		if err := a.st.ExportTo(path); err != nil {
			a.status = "Export failed: " + err.Error()
			return
		}
		a.status = "Exported to " + path

	case formBackup:
		written, err := a.st.BackupTo(strings.TrimSpace(a.formVals.path))
		if err != nil {
			a.status = "Backup failed: " + err.Error()
			return
		}
		a.status = "Backup written to " + written
	}
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 2)

	card := cardStyle.Render(a.form.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// Package cmd implements the outgo CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"outgo/internal/config"
	"outgo/internal/store"
	"outgo/internal/tui"
	"outgo/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flagFile  string
	flagYear  int
	flagMonth int
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:   "outgo",
	Short: "Personal expense tracker",
	Long:  "Track dated, categorized expenses in a plain CSV file, with summaries and spending-trend analytics.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Backing data file (default: config, then XDG data dir)")
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Filter to year")
	rootCmd.PersistentFlags().IntVarP(&flagMonth, "month", "m", 0, "Filter to month (1-12)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress load warnings")
}

// openStore is the shared store opening path used by all commands. The
// backend and file location come from flags, environment, and config.
func openStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config error, using defaults: %v\n", err)
	}
	theme.SetActive(cfg.Appearance.Theme)

	path := config.DataFile(cfg, flagFile)

	var repo store.Repository
	if cfg.Storage.Backend == config.BackendSQLite {
		// The CSV-named default makes no sense for the sqlite backend
		if filepath.Ext(path) == ".csv" {
			path = strings.TrimSuffix(path, ".csv") + ".db"
		}
		repo, err = store.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
	} else {
		repo = store.NewCSV(path)
	}

	st, err := store.Open(repo)
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Could not read %s: %v\n  Starting with an empty record set.\n", path, err)
		}
		return st, nil
	}

	if !flagQuiet {
		for _, w := range st.Warnings() {
			fmt.Fprintf(os.Stderr, "  Skipping line %d: %v\n", w.Line, w.Err)
		}
	}

	return st, nil
}

// filterFlags converts the --year/--month flags to filter predicates.
func filterFlags() (*int, *time.Month, error) {
	var year *int
	var month *time.Month
	if flagYear != 0 {
		if flagYear < 1 || flagYear > 9999 {
			return nil, nil, fmt.Errorf("invalid year %d", flagYear)
		}
		y := flagYear
		year = &y
	}
	if flagMonth != 0 {
		if flagMonth < 1 || flagMonth > 12 {
			return nil, nil, fmt.Errorf("invalid month %d, want 1-12", flagMonth)
		}
		m := time.Month(flagMonth)
		month = &m
	}
	return year, month, nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	year, month, err := filterFlags()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(tui.NewApp(st, year, month), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

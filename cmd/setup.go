package cmd

import (
	"fmt"

	"outgo/internal/config"
	"outgo/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure data file, storage backend, and theme",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults so re-running preserves settings
	cfg, _ := config.Load()

	dataFile := cfg.General.DataFile
	backend := cfg.Storage.Backend
	if backend == "" {
		backend = config.BackendCSV
	}
	themeName := cfg.Appearance.Theme

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data file").
				Description(fmt.Sprintf("Leave blank for the default (%s)", config.DataFile(config.DefaultConfig(), ""))).
				Value(&dataFile),
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("CSV flat file", config.BackendCSV),
					huh.NewOption("Embedded SQLite", config.BackendSQLite),
				).
				Value(&backend),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.DataFile = dataFile
	cfg.Storage.Backend = backend
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `outgo setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

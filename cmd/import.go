package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import expenses from a CSV file",
	Long:  "Replace the current record set with the contents of an external CSV file. Columns are matched by header name; date, category, and amount are required.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	if !flagYes && st.Len() > 0 {
		confirm := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Replace %d existing record(s)?", st.Len())).
			Description("Importing overwrites the entire data file.").
			Affirmative("Import").
			Negative("Cancel").
			Value(&confirm)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirm {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	imported, skipped, err := st.ImportFrom(args[0])
	if err != nil {
		return err
	}

	if skipped > 0 {
		fmt.Printf("  Imported %d record(s), skipped %d unparsable row(s).\n", imported, skipped)
	} else {
		fmt.Printf("  Imported %d record(s).\n", imported)
	}
	return nil
}

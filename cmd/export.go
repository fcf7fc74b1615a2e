package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export all expenses to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	if err := st.ExportTo(args[0]); err != nil {
		return err
	}

	fmt.Printf("  Exported %d record(s) to %s\n", st.Len(), args[0])
	return nil
}

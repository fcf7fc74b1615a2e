package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [path]",
	Short: "Write a copy of the data file",
	Long:  "Write a copy of the current record set. Without a path, a timestamped sibling of the data file is created.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func runBackup(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	written, err := st.BackupTo(path)
	if err != nil {
		return err
	}

	fmt.Printf("  Backup written to %s\n", written)
	return nil
}

package cmd

import (
	"fmt"

	"outgo/internal/cli"
	"outgo/internal/model"
	"outgo/internal/pipeline"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	year, month, err := filterFlags()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	records := pipeline.Filter(st.Records(), year, month)
	if len(records) == 0 {
		fmt.Println("\n  No expenses recorded.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(filterTitle("EXPENSES", year, month)))
	fmt.Println()

	rows := make([][]string, 0, len(records)+2)
	for i, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Date.Format(model.DateFormat),
			string(r.Category),
			cli.FormatAmount(r.Amount),
			r.Note,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"", "", "Total",
		cli.FormatAmount(pipeline.GrandTotal(records)),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Date", "Category", "Amount", "Note"},
		Rows:    rows,
	}))

	return nil
}

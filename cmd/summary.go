package cmd

import (
	"fmt"
	"time"

	"outgo/internal/cli"
	"outgo/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly and category totals with spending trend",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
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

	grand := pipeline.GrandTotal(records)

	fmt.Println()
	fmt.Println(cli.RenderTitle(filterTitle("SUMMARY", year, month)))
	fmt.Println()

	// Monthly totals
	months := pipeline.AggregateMonthly(records)
	monthRows := make([][]string, 0, len(months)+2)
	for _, m := range months {
		monthRows = append(monthRows, []string{
			cli.FormatMonthName(m.Year, m.Month),
			cli.FormatAmount(m.Total),
		})
	}
	monthRows = append(monthRows, []string{"---"})
	monthRows = append(monthRows, []string{"Total", cli.FormatAmount(grand)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Month",
		Headers: []string{"Month", "Amount"},
		Rows:    monthRows,
	}))
	fmt.Println()

	// Category totals with share of the grand total
	cats := pipeline.AggregateCategories(records)
	catRows := make([][]string, 0, len(cats))
	for _, c := range cats {
		share := 0.0
		if grand > 0 {
			share = float64(c.Total) / float64(grand)
		}
		catRows = append(catRows, []string{
			string(c.Category),
			cli.FormatAmount(c.Total),
			cli.FormatPercent(share),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Category",
		Headers: []string{"Category", "Amount", "Share"},
		Rows:    catRows,
	}))
	fmt.Println()

	// Spending trend over observed days
	daily := pipeline.AggregateDaily(records)
	trend := pipeline.FitTrend(daily)
	if trend.OK {
		direction := "rising"
		if trend.Slope < 0 {
			direction = "falling"
		}
		fmt.Printf("  Trend: %+.2f/day (%s) over %d spending day(s)\n",
			trend.Slope, direction, len(daily))
	} else {
		fmt.Printf("  Trend: not enough days (%d)\n", len(daily))
	}

	return nil
}

// filterTitle appends the active year/month filter to a title.
func filterTitle(base string, year *int, month *time.Month) string {
	switch {
	case year != nil && month != nil:
		return fmt.Sprintf("%s  %s %d", base, month.String()[:3], *year)
	case year != nil:
		return fmt.Sprintf("%s  %d", base, *year)
	case month != nil:
		return fmt.Sprintf("%s  %s (all years)", base, month.String()[:3])
	}
	return base
}

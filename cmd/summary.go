package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/summary"
)

var (
	summaryDate string
	summaryWeek bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Compare planned and executed time",
	Long:  "Display time per title and kind for a grid day or week, with planned, executed and task totals",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&summaryDate, "date", "today", "Day to summarize (today, yesterday, tomorrow, or YYYY-MM-DD)")
	summaryCmd.Flags().BoolVar(&summaryWeek, "week", false, "Summarize the whole week containing --date")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Grid()

	date, err := parseDate(summaryDate, cfg, nowFunc())
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	start, end := cfg.DayRange(date)
	label := date.Format(dateLayout)
	if summaryWeek {
		start, end = cfg.WeekRange(date)
		label = "week of " + start.Format(dateLayout)
	}

	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	entries, err := database.GetEntriesByRange(start, end)
	if err != nil {
		return fmt.Errorf("failed to query entries: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), summary.FormatTable(summary.Summarize(entries, start, end), label))
	return nil
}

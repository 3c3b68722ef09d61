package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/grid"
	"github.com/chris/planner/internal/timetable"
)

var (
	dailyDate   string
	dailyFormat string
	dailyUnit   string
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show the daily time grid",
	Long:  "Display one grid day as hour rows with every entry placed at its offset and span",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)

	dailyCmd.Flags().StringVar(&dailyDate, "date", "today", "Day to show (today, yesterday, tomorrow, or YYYY-MM-DD)")
	dailyCmd.Flags().StringVar(&dailyFormat, "format", "text", "Output format (text, json, yaml)")
	dailyCmd.Flags().StringVar(&dailyUnit, "unit", "minutes", "Row unit (minutes, blocks)")
}

func parseUnit(s string) (grid.Unit, error) {
	switch s {
	case "minutes":
		return grid.UnitMinutes, nil
	case "blocks":
		return grid.UnitBlocks, nil
	}
	return 0, fmt.Errorf("unit must be 'minutes' or 'blocks', got %q", s)
}

func runDaily(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Grid()
	now := nowFunc()

	date, err := parseDate(dailyDate, cfg, now)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	format, err := timetable.ParseFormat(dailyFormat)
	if err != nil {
		return err
	}
	unit, err := parseUnit(dailyUnit)
	if err != nil {
		return err
	}

	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	start, end := cfg.DayRange(date)
	entries, err := database.GetEntriesByRange(start, end)
	if err != nil {
		return fmt.Errorf("failed to query entries: %w", err)
	}

	daily := timetable.BuildDaily(cfg, entries, date, unit, timetable.Options{Now: &now})
	if format != timetable.FormatText {
		return timetable.Encode(cmd.OutOrStdout(), daily, format)
	}

	fmt.Fprint(cmd.OutOrStdout(), timetable.FormatDaily(daily, timetable.FormatOptions{NoColor: noColor(cmd.OutOrStdout())}))
	return nil
}

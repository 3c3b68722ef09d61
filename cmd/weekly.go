package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/timetable"
)

var (
	weeklyDate   string
	weeklyFormat string
)

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show the weekly time grid",
	Long:  "Display the week containing a date as day columns, with entries split at day boundaries",
	RunE:  runWeekly,
}

func init() {
	rootCmd.AddCommand(weeklyCmd)

	weeklyCmd.Flags().StringVar(&weeklyDate, "date", "today", "Any day of the week to show (today, yesterday, tomorrow, or YYYY-MM-DD)")
	weeklyCmd.Flags().StringVar(&weeklyFormat, "format", "text", "Output format (text, json, yaml)")
}

func runWeekly(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Grid()
	now := nowFunc()

	date, err := parseDate(weeklyDate, cfg, now)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	format, err := timetable.ParseFormat(weeklyFormat)
	if err != nil {
		return err
	}

	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	start, end := cfg.WeekRange(date)
	entries, err := database.GetEntriesByRange(start, end)
	if err != nil {
		return fmt.Errorf("failed to query entries: %w", err)
	}

	weekly := timetable.BuildWeekly(cfg, entries, date, timetable.Options{Now: &now})
	if format != timetable.FormatText {
		return timetable.Encode(cmd.OutOrStdout(), weekly, format)
	}

	fmt.Fprint(cmd.OutOrStdout(), timetable.FormatWeekly(weekly, timetable.FormatOptions{NoColor: noColor(cmd.OutOrStdout())}))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/log"
	"github.com/chris/planner/pkg/models"
)

var (
	addKind  string
	addDate  string
	addStart string
	addEnd   string
	addColor string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a plan, task or execution entry",
	Long: `Add an entry on a grid day. Times are HH:MM wall clock; hours before the
day start hour belong to the end of the grid day.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addKind, "kind", "k", string(models.KindPlan), "Entry kind (task, plan, execution)")
	addCmd.Flags().StringVar(&addDate, "date", "today", "Grid day (today, yesterday, tomorrow, or YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addStart, "start", "s", "", "Start time HH:MM")
	addCmd.Flags().StringVarP(&addEnd, "end", "e", "", "End time HH:MM (default: same as start)")
	addCmd.Flags().StringVar(&addColor, "color", "", "Display color, e.g. #ff8800 or an ANSI number")
	addCmd.MarkFlagRequired("start")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Grid()

	kind := models.Kind(addKind)
	if !kind.Valid() {
		return fmt.Errorf("invalid kind %q: must be task, plan or execution", addKind)
	}

	date, err := parseDate(addDate, cfg, nowFunc())
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	start, err := parseClock(addStart, cfg, date)
	if err != nil {
		return err
	}
	end := start
	if addEnd != "" {
		if end, err = parseClock(addEnd, cfg, date); err != nil {
			return err
		}
	}
	if end.Before(start) {
		return fmt.Errorf("end %s is before start %s", addEnd, addStart)
	}

	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	e := models.NewEntry(kind, args[0], start, end)
	e.Color = addColor
	id, err := database.InsertEntry(e)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	log.Info("entry added", "id", id, "kind", kind, "start", start, "end", end)

	origin := cfg.DayOrigin(date)
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %d: %s %s\n", kind, id, e.Title,
		cfg.FormatMinutes(cfg.ToGridMinutes(start), origin)+" - "+cfg.FormatMinutes(cfg.ToGridMinutes(end), origin))
	return nil
}

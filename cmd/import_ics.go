package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/ics"
	"github.com/chris/planner/internal/log"
	"github.com/chris/planner/pkg/models"
)

var (
	importFrom string
	importDays int
	importKind string
	importMax  int
)

var importICSCmd = &cobra.Command{
	Use:   "import-ics <file.ics>",
	Short: "Import calendar events as entries",
	Long: `Import VEVENTs from an iCalendar file. Recurring events are expanded
within the import window. Re-importing the same file updates entries in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportICS,
}

func init() {
	rootCmd.AddCommand(importICSCmd)

	importICSCmd.Flags().StringVar(&importFrom, "from", "today", "First grid day of the import window (today, yesterday, tomorrow, or YYYY-MM-DD)")
	importICSCmd.Flags().IntVar(&importDays, "days", 28, "Number of days in the import window")
	importICSCmd.Flags().StringVarP(&importKind, "kind", "k", string(models.KindPlan), "Kind for imported entries (task, plan, execution)")
	importICSCmd.Flags().IntVar(&importMax, "max-occurrences", 0, "Cap on instances per recurring event (0 for the default)")
}

func runImportICS(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Grid()

	kind := models.Kind(importKind)
	if !kind.Valid() {
		return fmt.Errorf("invalid kind %q: must be task, plan or execution", importKind)
	}
	if importDays <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	from, err := parseDate(importFrom, cfg, nowFunc())
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	path := args[0]
	events, err := ics.ParseFile(path)
	if err != nil {
		return err
	}

	start := cfg.DayOrigin(from)
	entries, err := ics.Expand(events, ics.ExpandConfig{
		Start:          start,
		End:            start.AddDate(0, 0, importDays),
		MaxOccurrences: importMax,
		Kind:           kind,
	})
	if err != nil {
		return fmt.Errorf("failed to expand events: %w", err)
	}

	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	for i := range entries {
		if _, err := database.UpsertEntry(&entries[i]); err != nil {
			return fmt.Errorf("failed to store %q: %w", entries[i].Title, err)
		}
	}

	source, err := filepath.Abs(path)
	if err != nil {
		source = path
	}
	if err := database.RecordImport(source, nowFunc(), len(entries)); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	log.Info("calendar imported", "source", source, "events", len(events), "entries", len(entries))

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s\n", len(entries), path)
	return nil
}

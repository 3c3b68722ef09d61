package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [entry-ids...]",
	Short: "Delete entries by ID",
	Long:  "Delete one or more entries from the planner database by their IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

var doneCmd = &cobra.Command{
	Use:   "done [entry-ids...]",
	Short: "Mark entries as completed",
	Long:  "Mark one or more entries as completed, or as not completed with --undo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

var doneUndo bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(doneCmd)
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark as not completed")
}

// parseIDs parses positional args as positive int64 entry IDs
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid entry ID %q: %w", arg, err)
		}
		if id <= 0 {
			return nil, fmt.Errorf("invalid entry ID %q: must be a positive integer", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	count := 0
	for _, id := range ids {
		deleted, err := database.DeleteEntry(id)
		if err != nil {
			return fmt.Errorf("failed to delete entry %d: %w", id, err)
		}
		if deleted {
			count++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entry(s)\n", count)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	for _, id := range ids {
		if err := database.SetCompleted(id, !doneUndo); err != nil {
			return fmt.Errorf("failed to update entry %d: %w", id, err)
		}
	}

	state := "completed"
	if doneUndo {
		state = "not completed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Marked %d entry(s) %s\n", len(ids), state)
	return nil
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize the database schema",
	Long:  "Creates the planner database and initializes the schema. Safe to run multiple times - will not overwrite existing data.",
	RunE:  runInitDB,
}

var initDBShowSchema bool

func init() {
	initDBCmd.Flags().BoolVar(&initDBShowSchema, "schema", false, "Print the schema version and entries columns")
	rootCmd.AddCommand(initDBCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	// Open with SkipSchemaCheck, then call InitSchema to detect new vs existing
	database, err := db.NewWithOptions(appConfig.DB, db.Options{SkipSchemaCheck: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	created, err := database.InitSchema()
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	exists, err := database.TableExists()
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("entries table missing after initializing %s", database.Path())
	}

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "Database initialized: %s\n", database.Path())
	} else {
		fmt.Fprintf(out, "Database up to date: %s\n", database.Path())
	}

	if initDBShowSchema {
		return printSchema(out, database)
	}
	return nil
}

func printSchema(w io.Writer, database *db.DB) error {
	version, err := database.SchemaVersion()
	if err != nil {
		return err
	}
	columns, err := database.GetTableSchema()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Schema version %d, entries columns:\n", version)
	for _, col := range columns {
		fmt.Fprintf(w, "  %-10s %s\n", col["name"], col["type"])
	}
	return nil
}

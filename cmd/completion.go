package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
)

func init() {
	// Register custom completions after all commands are initialized
	cobra.OnInitialize(registerCompletions)
}

func registerCompletions() {
	// --db flag: complete with .db files
	rootCmd.RegisterFlagCompletionFunc("db", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"db"}, cobra.ShellCompDirectiveFilterFileExt
	})

	// --config flag: complete with YAML files
	rootCmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.RegisterFlagCompletionFunc("log-level", fixedCompletions(
		"debug\tEverything",
		"info\tImports, commits and server lifecycle",
		"error\tFailures only",
	))

	for _, cmd := range []*cobra.Command{dailyCmd, weeklyCmd, addCmd, tuiCmd} {
		cmd.RegisterFlagCompletionFunc("date", completeDate)
	}
	importICSCmd.RegisterFlagCompletionFunc("from", completeDate)

	for _, cmd := range []*cobra.Command{dailyCmd, weeklyCmd} {
		cmd.RegisterFlagCompletionFunc("format", fixedCompletions(
			"text\tGrid rendered as text",
			"json\tLayout as JSON",
			"yaml\tLayout as YAML",
		))
	}
	dailyCmd.RegisterFlagCompletionFunc("unit", fixedCompletions(
		"minutes\tOne unit per minute",
		"blocks\tOne unit per block",
	))

	for _, cmd := range []*cobra.Command{addCmd, importICSCmd} {
		cmd.RegisterFlagCompletionFunc("kind", fixedCompletions(
			"plan\tPlanned time",
			"task\tTo-do item",
			"execution\tWork actually done",
		))
	}

	deleteCmd.ValidArgsFunction = completeEntryIDs
	doneCmd.ValidArgsFunction = completeEntryIDs
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func completeDate(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"today\tThe current grid day",
		"yesterday\tThe previous grid day",
		"tomorrow\tThe next grid day",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeEntryIDs offers the IDs of today's entries
func completeEntryIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Completion skips PersistentPreRunE, so --db has not been folded into appConfig.
	path := dbPath
	if path == "" {
		path = appConfig.DB
	}
	database, err := db.New(path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer database.Close()

	cfg := appConfig.Grid()
	date := cfg.GridDate(nowFunc())
	start, end := cfg.DayRange(date)
	entries, err := database.GetEntriesByRange(start, end)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	origin := cfg.DayOrigin(date)
	var completions []string
	for _, e := range entries {
		completions = append(completions, fmt.Sprintf("%d\t%s %s %s", e.ID,
			cfg.FormatMinutes(cfg.ToGridMinutes(e.Start), origin), e.Kind, e.Title))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/config"
	"github.com/chris/planner/internal/timetable"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the planner configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Write the built-in defaults to the config file. Refuses to overwrite an existing file unless --force is given.",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after applying the config file, PLANNER_* environment variables and flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		return timetable.Encode(cmd.OutOrStdout(), appConfig, timetable.FormatYAML)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config written: %s\n", path)
	return nil
}

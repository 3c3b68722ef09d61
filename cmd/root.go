package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/config"
	"github.com/chris/planner/internal/log"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	// appConfig is loaded before every command runs.
	appConfig = config.DefaultConfig()

	// nowFunc is replaced in tests.
	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:               "planner",
	Short:             "Personal planner time grid",
	Long:              "A command-line planner that lays plans, tasks and executed work out on daily and weekly time grids",
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.local/share/planner/planner.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/planner/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info or error")
	rootCmd.SetVersionTemplate("planner version {{.Version}}\n")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version number of planner")
}

// loadConfig reads the config file and environment, then applies flag
// overrides and sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.DB = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	appConfig = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := log.Init(level, false); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	log.Debug("config loaded", "path", path, "db", cfg.DB)
	return nil
}

// resolvedConfigPath is the config file commands read and write.
func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

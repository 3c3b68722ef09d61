package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the grid layouts as JSON",
	Long: `Serve a read-only HTTP API:

  GET /health
  GET /api/daily?date=YYYY-MM-DD&unit=minutes|blocks
  GET /api/weekly?date=YYYY-MM-DD
  GET /api/now`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Listen address (default from config, 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveListen
	if addr == "" {
		addr = appConfig.Listen
	}

	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", database.Path(), addr)
	return server.New(database, appConfig.Grid(), server.WithNow(nowFunc)).Run(ctx, addr)
}

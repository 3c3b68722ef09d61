package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/clock"
	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/log"
	"github.com/chris/planner/internal/timetable/tui"
)

var (
	tuiWeekly bool
	tuiDate   string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive daily and weekly grid",
	Long: `Open the interactive grid. Drag with the mouse to select a time range and
press Enter to log it as executed work. Press ? for all keys.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&tuiWeekly, "weekly", false, "Start in the weekly view")
	tuiCmd.Flags().StringVar(&tuiDate, "date", "today", "Day to open (today, yesterday, tomorrow, or YYYY-MM-DD)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("tui requires a terminal")
	}
	cfg := appConfig.Grid()

	date, err := parseDate(tuiDate, cfg, nowFunc())
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	// Fail before entering the alternate screen when there is nothing to show.
	database, err := db.New(appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	database.Close()

	ticker, err := clock.New(appConfig.RefreshCron)
	if err != nil {
		return err
	}

	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())

	opts := []tui.Option{tui.WithDate(date)}
	if tuiWeekly {
		opts = append(opts, tui.WithView(tui.WeeklyView))
	}
	model := tui.New(appConfig.DB, cfg, opts...)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Send blocks until the program is running, so the ticker starts beside it.
	go func() {
		if err := ticker.Start(ctx, func(t time.Time) { p.Send(tui.NowMsg{Time: t}) }); err != nil {
			log.Error("failed to start clock", err)
		}
	}()

	_, err = p.Run()
	cancel()
	ticker.Stop()
	if err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/planner/internal/clock"
	"github.com/chris/planner/internal/grid"
)

var nowWatch bool

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show where the current time falls on the grid",
	Long:  "Print the grid day, hour row and weekly column of the current time. With --watch, print again on every refresh tick.",
	RunE:  runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)
	nowCmd.Flags().BoolVarP(&nowWatch, "watch", "w", false, "Keep printing on the refresh_cron schedule until interrupted")
}

func runNow(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Grid()
	out := cmd.OutOrStdout()

	if !nowWatch {
		printNow(out, cfg, nowFunc())
		return nil
	}

	ticker, err := clock.New(appConfig.RefreshCron, clock.WithNow(nowFunc))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := ticker.Start(ctx, func(t time.Time) { printNow(out, cfg, t) }); err != nil {
		return err
	}
	<-ctx.Done()
	ticker.Stop()
	return nil
}

func printNow(w io.Writer, cfg grid.Config, now time.Time) {
	date := cfg.GridDate(now)
	m := cfg.NowPosition(now)

	fmt.Fprintf(w, "Now %s on grid day %s (%s)\n",
		cfg.FormatMinutes(m.Minutes, now), date.Format(dateLayout), date.Format("Monday"))
	fmt.Fprintf(w, "  row %s at %.0f%%, minute %d of the grid day\n",
		cfg.HourLabel(m.RowIndex), m.PercentWithinRow, m.Minutes)

	origin := cfg.WeekOrigin(date)
	if pos, ok := cfg.WeeklyNowPosition(now, origin); ok {
		fmt.Fprintf(w, "  week of %s, column %d (%s)\n",
			origin.Format(dateLayout), pos.DayIndex, origin.AddDate(0, 0, pos.DayIndex).Format("Mon"))
	}
}

package cmd

import (
	"bytes"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/pkg/models"
)

func at(d, h, m int) time.Time {
	return time.Date(2024, 3, d, h, m, 0, 0, time.Local)
}

// resetFlags restores every flag of c and its subcommands to its default
// and clears the "changed" status, since rootCmd is shared between tests
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setupTestDB creates an initialized database holding entries
func setupTestDB(t *testing.T, entries ...*models.Entry) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "planner.db")

	database, err := db.NewForTesting(dbPath)
	require.NoError(t, err)
	defer database.Close()

	for _, e := range entries {
		_, err := database.InsertEntry(e)
		require.NoError(t, err)
	}
	return dbPath
}

// execute runs rootCmd with args against an isolated config file unless one
// is given, with the
// clock frozen at 2024-03-10 09:20
func execute(t *testing.T, out *bytes.Buffer, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	nowFunc = func() time.Time { return at(10, 9, 20) }
	t.Cleanup(func() {
		nowFunc = time.Now
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	})

	if !slices.Contains(args, "--config") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "config.yaml"))
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

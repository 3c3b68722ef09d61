package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoFileExists(t, path)
}

func TestLoad_ReadsYAML(t *testing.T) {
	// Given: a config file overriding a few keys
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "day_start_hour: 6\nweek_start: monday\nlisten: \":9000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// When: loading it
	cfg, err := Load(path)

	// Then: overrides apply and the rest are defaults
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.DayStartHour)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, 6, cfg.BlocksPerHour)
	assert.Equal(t, time.Monday, cfg.Grid().WeekStart)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("day_start_hour: 6\n"), 0o600))
	t.Setenv("PLANNER_DAY_START_HOUR", "5")
	t.Setenv("PLANNER_SNAP_MINUTES", "15")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.DayStartHour)
	assert.Equal(t, 15, cfg.SnapMinutes)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("day_start_hour: [\n"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestNormalize_InvalidGridValues(t *testing.T) {
	cfg := &Config{DayStartHour: 25, BlocksPerHour: 7, WeekStart: "someday"}

	cfg.Normalize()

	assert.Equal(t, 4, cfg.DayStartHour)
	assert.Equal(t, 6, cfg.BlocksPerHour)
	assert.Equal(t, 7, cfg.DaysCount)
	assert.Equal(t, "sunday", cfg.WeekStart)
	assert.Equal(t, "* * * * *", cfg.RefreshCron)
}

func TestGrid_WeekdayAbbreviations(t *testing.T) {
	assert.Equal(t, time.Monday, (&Config{WeekStart: "Mon"}).Grid().WeekStart)
	assert.Equal(t, time.Saturday, (&Config{WeekStart: "SATURDAY"}).Grid().WeekStart)
	assert.Equal(t, time.Sunday, (&Config{WeekStart: ""}).Grid().WeekStart)
}

func TestSave_RoundTrip(t *testing.T) {
	// Given: a modified config
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.DayStartHour = 5
	cfg.DB = "/tmp/planner.db"

	// When: saving and loading it
	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)

	// Then: values survive and the file is private
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSave_EmptyPath(t *testing.T) {
	err := Save("", DefaultConfig())

	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestDefaultPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "planner", "config.yaml"), path)
}

// Package config loads planner settings from YAML and PLANNER_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/chris/planner/internal/clock"
	"github.com/chris/planner/internal/grid"
)

// EnvPrefix is prepended to every environment override, e.g.
// PLANNER_DAY_START_HOUR.
const EnvPrefix = "PLANNER"

const (
	defaultListen   = "127.0.0.1:8080"
	defaultLogLevel = "info"
	defaultWeekday  = "sunday"
)

// ErrEmptyPath is returned when saving without a destination.
var ErrEmptyPath = errors.New("config path is empty")

// Config is the planner's persisted configuration.
type Config struct {
	// DayStartHour is the hour at which a grid day begins (0-23).
	DayStartHour int `mapstructure:"day_start_hour" yaml:"day_start_hour"`
	// BlocksPerHour subdivides hour rows in block views; must divide 60.
	BlocksPerHour int `mapstructure:"blocks_per_hour" yaml:"blocks_per_hour"`
	// DaysCount is the number of columns in the weekly view.
	DaysCount int `mapstructure:"days_count" yaml:"days_count"`
	// SnapMinutes is the weekly drag snap unit.
	SnapMinutes int `mapstructure:"snap_minutes" yaml:"snap_minutes"`
	// ClickThreshold is the minimum drag length, in minutes, kept as a selection.
	ClickThreshold int `mapstructure:"click_threshold" yaml:"click_threshold"`
	// WeekStart is the first weekday column, e.g. "sunday" or "monday".
	WeekStart string `mapstructure:"week_start" yaml:"week_start"`

	DB          string `mapstructure:"db" yaml:"db"`
	Listen      string `mapstructure:"listen" yaml:"listen"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	RefreshCron string `mapstructure:"refresh_cron" yaml:"refresh_cron"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	g := grid.DefaultConfig()
	return &Config{
		DayStartHour:   g.DayStartHour,
		BlocksPerHour:  g.BlocksPerHour,
		DaysCount:      g.DaysCount,
		SnapMinutes:    g.SnapMinutes,
		ClickThreshold: g.ClickThreshold,
		WeekStart:      defaultWeekday,
		Listen:         defaultListen,
		LogLevel:       defaultLogLevel,
		RefreshCron:    clock.DefaultSpec,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/planner/config.yaml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "planner", "config.yaml"), nil
}

// Load reads path (or the default location when empty), applies PLANNER_*
// environment overrides and normalizes the result. A missing file is not an
// error; defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("day_start_hour", def.DayStartHour)
	v.SetDefault("blocks_per_hour", def.BlocksPerHour)
	v.SetDefault("days_count", def.DaysCount)
	v.SetDefault("snap_minutes", def.SnapMinutes)
	v.SetDefault("click_threshold", def.ClickThreshold)
	v.SetDefault("week_start", def.WeekStart)
	v.SetDefault("db", def.DB)
	v.SetDefault("listen", def.Listen)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("refresh_cron", def.RefreshCron)

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Normalize replaces missing or invalid values with defaults.
func (c *Config) Normalize() {
	g := c.Grid()
	c.DayStartHour = g.DayStartHour
	c.BlocksPerHour = g.BlocksPerHour
	c.DaysCount = g.DaysCount
	c.SnapMinutes = g.SnapMinutes
	c.ClickThreshold = g.ClickThreshold
	c.WeekStart = strings.ToLower(g.WeekStart.String())

	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.RefreshCron == "" {
		c.RefreshCron = clock.DefaultSpec
	}
}

// Grid returns the layout configuration, normalized.
func (c *Config) Grid() grid.Config {
	g := grid.Config{
		DayStartHour:   c.DayStartHour,
		BlocksPerHour:  c.BlocksPerHour,
		DaysCount:      c.DaysCount,
		SnapMinutes:    c.SnapMinutes,
		ClickThreshold: c.ClickThreshold,
		WeekStart:      parseWeekday(c.WeekStart),
	}
	g.Normalize()
	return g
}

func parseWeekday(s string) time.Weekday {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d
		}
	}
	return time.Sunday
}

// Save normalizes cfg and writes it to path as YAML with 0600 permissions,
// replacing any existing file atomically.
func Save(path string, cfg *Config) error {
	if path == "" {
		return ErrEmptyPath
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".planner-config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// Save writes c to path.
func (c *Config) Save(path string) error {
	return Save(path, c)
}

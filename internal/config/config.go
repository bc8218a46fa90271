package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/balkashynov/skipsmart/internal/models"
)

// Config holds all skipsmart configuration.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Defaults  DefaultsConfig  `toml:"defaults"`
	Reconcile ReconcileConfig `toml:"reconcile"`
}

// GeneralConfig holds storage and locale settings.
type GeneralConfig struct {
	// Database is the sqlite file path. Empty means ~/.skipsmart/skipsmart.db.
	Database string `toml:"database,omitempty"`
	// Timezone is an IANA zone name used for class dates and times. Empty means local time.
	Timezone string `toml:"timezone,omitempty"`
	// Owner is recorded on new semesters. Empty means the current OS user.
	Owner string `toml:"owner,omitempty"`
}

// DefaultsConfig holds defaults for new subjects and listings.
type DefaultsConfig struct {
	TargetPercentage float64 `toml:"target_percentage"`
	UpcomingLimit    int     `toml:"upcoming_limit"`
}

// ReconcileConfig controls when elapsed, unmarked sessions are closed out.
type ReconcileConfig struct {
	// Cron is the schedule used by `skipsmart daemon`.
	Cron string `toml:"cron"`
	// OnRead runs a sweep before stats and session listings.
	OnRead bool `toml:"on_read"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			TargetPercentage: models.DefaultTargetPercentage,
			UpcomingLimit:    10,
		},
		Reconcile: ReconcileConfig{
			Cron:   "*/15 * * * *",
			OnRead: true,
		},
	}
}

// Normalize fills in zero values left by partial config files.
func (c *Config) Normalize() {
	if c.Defaults.TargetPercentage <= 0 || c.Defaults.TargetPercentage > 100 {
		c.Defaults.TargetPercentage = models.DefaultTargetPercentage
	}
	if c.Defaults.UpcomingLimit <= 0 {
		c.Defaults.UpcomingLimit = 10
	}
	if c.Reconcile.Cron == "" {
		c.Reconcile.Cron = "*/15 * * * *"
	}
}

// Validate checks values that cannot be repaired silently.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(c.Reconcile.Cron); err != nil {
		return fmt.Errorf("invalid reconcile cron %q: %w", c.Reconcile.Cron, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.General.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.General.Timezone, err)
	}
	return loc, nil
}

// DatabasePath returns the configured database path or the default one.
func (c Config) DatabasePath() (string, error) {
	if c.General.Database != "" {
		return c.General.Database, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".skipsmart", "skipsmart.db"), nil
}

// OwnerName returns the configured owner or the current OS user.
func (c Config) OwnerName() string {
	if c.General.Owner != "" {
		return c.General.Owner
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skipsmart")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "skipsmart")
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, returning defaults if it doesn't exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to path, or the default location when path is empty.
func Save(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

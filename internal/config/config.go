// Package config handles configuration loading and validation for splice.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the top-level configuration.
type Config struct {
	Log       LogConfig       `toml:"log" yaml:"log" json:"log"`
	Share     ShareConfig     `toml:"share" yaml:"share" json:"share"`
	Thumbnail ThumbnailConfig `toml:"thumbnail" yaml:"thumbnail" json:"thumbnail"`
	Attempts  AttemptsConfig  `toml:"attempts" yaml:"attempts" json:"attempts"`
	Editor    EditorConfig    `toml:"editor" yaml:"editor" json:"editor"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
}

type ShareConfig struct {
	// InsertAt is "cursor" or "end".
	InsertAt string `toml:"insert_at" yaml:"insert_at" json:"insert_at"`
	// Parallel bounds concurrent thumbnail loads per share.
	Parallel int `toml:"parallel" yaml:"parallel" json:"parallel"`
}

type ThumbnailConfig struct {
	MaxWidth      int    `toml:"max_width" yaml:"max_width" json:"max_width"`
	MaxHeight     int    `toml:"max_height" yaml:"max_height" json:"max_height"`
	CornerRadius  int    `toml:"corner_radius" yaml:"corner_radius" json:"corner_radius"`
	MaxBytes      int64  `toml:"max_bytes" yaml:"max_bytes" json:"max_bytes"`
	MaxPixels     int64  `toml:"max_pixels" yaml:"max_pixels" json:"max_pixels"`
	RequireTLS    bool   `toml:"require_tls" yaml:"require_tls" json:"require_tls"`
	TimeoutSec    int    `toml:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	CacheDir      string `toml:"cache_dir" yaml:"cache_dir" json:"cache_dir"`
	MemoryEntries int    `toml:"memory_entries" yaml:"memory_entries" json:"memory_entries"`
}

type AttemptsConfig struct {
	DBPath             string `toml:"db_path" yaml:"db_path" json:"db_path"`
	SuccessCooldownMin int    `toml:"success_cooldown_min" yaml:"success_cooldown_min" json:"success_cooldown_min"`
	RetentionDays      int    `toml:"retention_days" yaml:"retention_days" json:"retention_days"`
}

type EditorConfig struct {
	Width        int `toml:"width" yaml:"width" json:"width"`
	Height       int `toml:"height" yaml:"height" json:"height"`
	HistoryLimit int `toml:"history_limit" yaml:"history_limit" json:"history_limit"`
}

// Dir is the per-user cache directory for splice.
func Dir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "splice")
}

// Path is the default config file location.
func Path() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(Dir(), "config.toml")
	}
	return filepath.Join(base, "splice", "config.toml")
}

func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Share: ShareConfig{
			InsertAt: "cursor",
			Parallel: 4,
		},
		Thumbnail: ThumbnailConfig{
			MaxWidth:      160,
			MaxHeight:     120,
			CornerRadius:  8,
			MaxBytes:      10 << 20,
			MaxPixels:     40_000_000,
			RequireTLS:    false,
			TimeoutSec:    30,
			CacheDir:      filepath.Join(dir, "thumbs"),
			MemoryEntries: 64,
		},
		Attempts: AttemptsConfig{
			DBPath:             filepath.Join(dir, "attempts.db"),
			SuccessCooldownMin: 24 * 60,
			RetentionDays:      7,
		},
		Editor: EditorConfig{
			Width:        80,
			Height:       12,
			HistoryLimit: 1000,
		},
	}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Thumbnail.TimeoutSec) * time.Second
}

func (c *Config) SuccessCooldown() time.Duration {
	return time.Duration(c.Attempts.SuccessCooldownMin) * time.Minute
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.Attempts.RetentionDays) * 24 * time.Hour
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	switch c.Share.InsertAt {
	case "cursor", "end":
	default:
		errs = append(errs, fmt.Errorf("share.insert_at: must be cursor or end, got %q", c.Share.InsertAt))
	}
	if c.Share.Parallel < 1 {
		errs = append(errs, errors.New("share.parallel: must be at least 1"))
	}
	if c.Thumbnail.MaxWidth < 1 || c.Thumbnail.MaxHeight < 1 {
		errs = append(errs, errors.New("thumbnail: max_width and max_height must be positive"))
	}
	if c.Thumbnail.CornerRadius < 0 {
		errs = append(errs, errors.New("thumbnail.corner_radius: must not be negative"))
	}
	if c.Thumbnail.MaxBytes < 0 {
		errs = append(errs, errors.New("thumbnail.max_bytes: must not be negative"))
	}
	if c.Thumbnail.TimeoutSec < 1 {
		errs = append(errs, errors.New("thumbnail.timeout_sec: must be at least 1"))
	}
	if c.Attempts.SuccessCooldownMin < 0 {
		errs = append(errs, errors.New("attempts.success_cooldown_min: must not be negative"))
	}
	if c.Editor.Width < 1 || c.Editor.Height < 1 {
		errs = append(errs, errors.New("editor: width and height must be positive"))
	}
	return errors.Join(errs...)
}

// ApplyEnvOverrides applies SPLICE_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SPLICE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SPLICE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("SPLICE_CACHE_DIR"); v != "" {
		c.Thumbnail.CacheDir = v
	}
	if v := os.Getenv("SPLICE_ATTEMPTS_DB"); v != "" {
		c.Attempts.DBPath = v
	}
	if v := os.Getenv("SPLICE_REQUIRE_TLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Thumbnail.RequireTLS = b
		}
	}
}

// Package config holds the YAML configuration of the ccmdump command.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyp0633/libccm/store/memory"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string `yaml:"level" json:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format" json:"format"`
}

// Config is the top-level configuration.
type Config struct {
	Log LogConfig `yaml:"log" json:"log"`

	// Seed is loaded into the in-memory store before the mirror starts.
	Seed memory.Seed `yaml:"seed" json:"seed"`
}

// DefaultConfig returns an in-memory default configuration with a small
// sample graph.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Seed: memory.Seed{Providers: []memory.SeedProvider{{
			Name: "Local",
			Collections: []memory.SeedCollection{{
				Name: "Personal",
				Calendars: []memory.SeedCalendar{{
					Name:  "Work",
					Color: "#ff9500",
					Events: []memory.SeedEvent{
						{Name: "Standup", Description: "Daily sync"},
					},
				}},
			}},
		}}},
	}
}

// Normalize fills in missing or unknown values with defaults.
func (c *Config) Normalize() {
	c.Log.Level = strings.ToLower(c.Log.Level)
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Log.Level = "info"
	}

	c.Log.Format = strings.ToLower(c.Log.Format)
	switch c.Log.Format {
	case "text", "json":
	default:
		c.Log.Format = "text"
	}
}

// Logger builds a logger writing to w according to c.Log.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Load reads the configuration at path. A missing file is created with the
// default configuration, which is then returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ccmdump-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Package config loads desalboard settings from ~/.desalboard/config.yaml and
// DESALBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desalboard/desalboard/internal/engine/cache"
	"github.com/desalboard/desalboard/internal/logging"
)

// Output formats accepted by Output.DefaultFormat and the --output flag.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config is the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" json:"data"`
	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Output    OutputConfig    `yaml:"output" json:"output"`
	Server    ServerConfig    `yaml:"server" json:"server"`
}

// DataConfig locates the plant dataset. An empty File uses the built-in one.
type DataConfig struct {
	File string `yaml:"file" json:"file"`
}

// DashboardConfig holds the initial slider positions.
type DashboardConfig struct {
	BatteryFraction float64 `yaml:"battery_fraction" json:"battery_fraction"`
	HorizonYears    int     `yaml:"horizon_years" json:"horizon_years"`
	SalinityPPM     float64 `yaml:"salinity_ppm" json:"salinity_ppm"`
	DepthM          float64 `yaml:"depth_m" json:"depth_m"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`
	File   string `yaml:"file" json:"file"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// ServerConfig controls the HTTP API. A zero CacheMaxEntries uses the cache
// default.
type ServerConfig struct {
	Listen          string `yaml:"listen" json:"listen"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds" json:"cache_ttl_seconds"`
	CacheMaxEntries int    `yaml:"cache_max_entries" json:"cache_max_entries"`
}

// Slider limits.
const (
	MaxHorizonYears = 200
	MaxSalinityPPM  = 50000
	MaxDepthM       = 5000
)

// New returns the default configuration.
func New() *Config {
	return &Config{
		Dashboard: DashboardConfig{
			BatteryFraction: 0.5,
			HorizonYears:    50,
			SalinityPPM:     950,
			DepthM:          950,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
			Output: logging.OutputStderr,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
		},
		Server: ServerConfig{
			Listen:          ":8050",
			CacheTTLSeconds: cache.DefaultTTLSeconds,
			CacheMaxEntries: cache.DefaultMaxEntries,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (when it
// exists) and environment overrides, then validates it. An empty path uses
// DefaultPath.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dir returns the desalboard configuration directory: $DESALBOARD_HOME, or
// ~/.desalboard.
func Dir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".desalboard"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error

	d := c.Dashboard
	if d.BatteryFraction < 0 || d.BatteryFraction > 1 {
		errs = append(errs, fmt.Errorf("dashboard.battery_fraction must be between 0 and 1, got %g", d.BatteryFraction))
	}
	if d.HorizonYears < 1 || d.HorizonYears > MaxHorizonYears {
		errs = append(errs, fmt.Errorf("dashboard.horizon_years must be between 1 and %d, got %d", MaxHorizonYears, d.HorizonYears))
	}
	if d.SalinityPPM < 0 || d.SalinityPPM > MaxSalinityPPM {
		errs = append(errs, fmt.Errorf("dashboard.salinity_ppm must be between 0 and %d, got %g", MaxSalinityPPM, d.SalinityPPM))
	}
	if d.DepthM < 0 || d.DepthM > MaxDepthM {
		errs = append(errs, fmt.Errorf("dashboard.depth_m must be between 0 and %d, got %g", MaxDepthM, d.DepthM))
	}

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("output.default_format must be %q or %q, got %q", FormatTable, FormatJSON, c.Output.DefaultFormat))
	}

	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.Logging.Format))
	}
	switch c.Logging.Output {
	case logging.OutputStderr:
	case logging.OutputFile:
		if c.Logging.File == "" {
			errs = append(errs, errors.New("logging.file is required when logging.output is file"))
		}
	default:
		errs = append(errs, fmt.Errorf("logging.output must be %q or %q, got %q", logging.OutputStderr, logging.OutputFile, c.Logging.Output))
	}

	if strings.TrimSpace(c.Server.Listen) == "" {
		errs = append(errs, errors.New("server.listen cannot be empty"))
	}
	if err := cache.ValidateTTL(c.Server.CacheTTLSeconds); err != nil {
		errs = append(errs, fmt.Errorf("server.cache_ttl_seconds: %w", err))
	}
	if c.Server.CacheMaxEntries < 0 {
		errs = append(errs, fmt.Errorf("server.cache_max_entries must be >= 0, got %d", c.Server.CacheMaxEntries))
	}

	return errors.Join(errs...)
}

// LoggingOptions converts the logging section for logging.New.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
		File:   c.Logging.File,
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desalboard/desalboard/internal/config"
	"github.com/desalboard/desalboard/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func lookupFrom(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestNewDefaults(t *testing.T) {
	cfg := config.New()

	assert.InDelta(t, 0.5, cfg.Dashboard.BatteryFraction, 1e-12)
	assert.Equal(t, 50, cfg.Dashboard.HorizonYears)
	assert.InDelta(t, 950.0, cfg.Dashboard.SalinityPPM, 1e-12)
	assert.InDelta(t, 950.0, cfg.Dashboard.DepthM, 1e-12)
	assert.Equal(t, ":8050", cfg.Server.Listen)
	assert.Equal(t, 300, cfg.Server.CacheTTLSeconds)
	assert.Equal(t, 1024, cfg.Server.CacheMaxEntries)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Empty(t, cfg.Data.File)
	require.NoError(t, cfg.Validate())
}

// clearEnv blanks every override so host settings cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvDataFile, config.EnvListen, config.EnvCacheTTL,
		config.EnvLogLevel, config.EnvLogFormat,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("file sections replace defaults", func(t *testing.T) {
		path := writeConfig(t, `
data:
  file: /srv/plant.yaml
dashboard:
  battery_fraction: 0.8
server:
  listen: "127.0.0.1:9000"
unknown_section:
  anything: true
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "/srv/plant.yaml", cfg.Data.File)
		assert.InDelta(t, 0.8, cfg.Dashboard.BatteryFraction, 1e-12)
		assert.Equal(t, 50, cfg.Dashboard.HorizonYears, "omitted fields keep the default")
		assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
		assert.Equal(t, 300, cfg.Server.CacheTTLSeconds)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		path := writeConfig(t, "server:\n  listen: \":7000\"\n")
		t.Setenv(config.EnvListen, ":7100")
		t.Setenv(config.EnvCacheTTL, "2m")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":7100", cfg.Server.Listen)
		assert.Equal(t, 120, cfg.Server.CacheTTLSeconds)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, "dashboard:\n  battery_fraction: 1.5\n  horizon_years: 0\n")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "battery_fraction")
		assert.Contains(t, err.Error(), "horizon_years")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "dashboard: [oops"))
		assert.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	cfg := config.New()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		config.EnvDataFile:  " /data/plant.yaml ",
		config.EnvLogLevel:  "DEBUG",
		config.EnvLogFormat: "JSON",
		config.EnvListen:    "",
		config.EnvCacheTTL:  "0",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/data/plant.yaml", cfg.Data.File)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, logging.FormatJSON, cfg.Logging.Format)
	assert.Equal(t, ":8050", cfg.Server.Listen, "empty values are ignored")
	assert.Equal(t, 0, cfg.Server.CacheTTLSeconds)

	err = config.New().ApplyEnv(lookupFrom(map[string]string{config.EnvCacheTTL: "soon"}))
	assert.ErrorContains(t, err, config.EnvCacheTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "negative battery", mutate: func(c *config.Config) { c.Dashboard.BatteryFraction = -0.1 }, wantErr: "battery_fraction"},
		{name: "horizon too long", mutate: func(c *config.Config) { c.Dashboard.HorizonYears = 500 }, wantErr: "horizon_years"},
		{name: "negative salinity", mutate: func(c *config.Config) { c.Dashboard.SalinityPPM = -1 }, wantErr: "salinity_ppm"},
		{name: "depth too deep", mutate: func(c *config.Config) { c.Dashboard.DepthM = 1e6 }, wantErr: "depth_m"},
		{name: "bad output format", mutate: func(c *config.Config) { c.Output.DefaultFormat = "xml" }, wantErr: "default_format"},
		{name: "bad log format", mutate: func(c *config.Config) { c.Logging.Format = "text" }, wantErr: "logging.format"},
		{name: "file output without file", mutate: func(c *config.Config) { c.Logging.Output = logging.OutputFile }, wantErr: "logging.file"},
		{name: "bad log output", mutate: func(c *config.Config) { c.Logging.Output = "syslog" }, wantErr: "logging.output"},
		{name: "empty listen", mutate: func(c *config.Config) { c.Server.Listen = " " }, wantErr: "server.listen"},
		{name: "negative ttl", mutate: func(c *config.Config) { c.Server.CacheTTLSeconds = -1 }, wantErr: "cache_ttl_seconds"},
		{name: "negative cache size", mutate: func(c *config.Config) { c.Server.CacheMaxEntries = -1 }, wantErr: "cache_max_entries"},
		{name: "zero cache size uses default", mutate: func(c *config.Config) { c.Server.CacheMaxEntries = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)
}

func TestLoggingOptions(t *testing.T) {
	cfg := config.New()
	cfg.Logging.File = "/tmp/desalboard.log"
	opts := cfg.LoggingOptions()
	assert.Equal(t, "info", opts.Level)
	assert.Equal(t, "/tmp/desalboard.log", opts.File)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := config.New()
	cfg.Dashboard.HorizonYears = 25
	cfg.Server.Listen = ":9100"
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

package config

import (
	"fmt"
	"strings"

	"github.com/desalboard/desalboard/internal/engine/cache"
)

// Environment variables that override the config file.
const (
	EnvHome      = "DESALBOARD_HOME"
	EnvDataFile  = "DESALBOARD_DATA_FILE"
	EnvLogLevel  = "DESALBOARD_LOG_LEVEL"
	EnvLogFormat = "DESALBOARD_LOG_FORMAT"
	EnvListen    = "DESALBOARD_LISTEN"
	EnvCacheTTL  = "DESALBOARD_CACHE_TTL"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv applies DESALBOARD_* overrides. Empty values are ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvDataFile); ok {
		c.Data.File = v
	}
	if v, ok := get(EnvLogLevel); ok {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := get(EnvLogFormat); ok {
		c.Logging.Format = strings.ToLower(v)
	}
	if v, ok := get(EnvListen); ok {
		c.Server.Listen = v
	}
	if v, ok := get(EnvCacheTTL); ok {
		ttl, err := cache.ParseTTL(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
		c.Server.CacheTTLSeconds = ttl
	}
	return nil
}

// Package config loads the qr2term configuration file.
//
// Configuration lives at ~/.config/qr2term/config.toml (respecting
// XDG_CONFIG_HOME) and every field has a working default, so a missing file
// is not an error. Command-line flags override file values; the file
// overrides built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/timvisee/qr2term/pkg/errors"
	"github.com/timvisee/qr2term/pkg/qr"
)

// appName is the directory name used under the XDG config and cache roots.
const appName = "qr2term"

// Config is the complete application configuration.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	History HistoryConfig `toml:"history"`
}

// RenderConfig controls how codes are encoded and drawn.
type RenderConfig struct {
	Level     string `toml:"level"`      // error-correction level: low, medium, high, highest
	QuietZone int    `toml:"quiet_zone"` // blank border thickness in pixels
}

// CacheConfig selects the cache backend used by the HTTP service.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file, redis or none
	Dir           string `toml:"dir"`     // file backend root; default ~/.cache/qr2term
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTLHours      int    `toml:"ttl_hours"` // entry lifetime; zero keeps entries forever
}

// ServerConfig controls the HTTP service.
type ServerConfig struct {
	Listen           string `toml:"listen"`
	PNGSize          int    `toml:"png_size"`           // edge length of served PNG images
	MaxContentLength int    `toml:"max_content_length"` // reject longer content up front
}

// HistoryConfig selects where the service records render events.
type HistoryConfig struct {
	Backend       string `toml:"backend"` // memory or mongo
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	Limit         int    `toml:"limit"` // events kept by the memory backend
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Level:     qr.DefaultLevel.String(),
			QuietZone: qr.DefaultQuietZone,
		},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			TTLHours:  24,
		},
		Server: ServerConfig{
			Listen:           ":8080",
			PNGSize:          512,
			MaxContentLength: 2048,
		},
		History: HistoryConfig{
			Backend:       "memory",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "qr2term",
			Limit:         100,
		},
	}
}

// Load reads the configuration at path, or the default path when path is
// empty. A missing file yields the defaults without error; a file that
// exists but does not parse or validate is reported.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			// No home directory; run on defaults.
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values that have a closed set of choices.
func (c *Config) Validate() error {
	if _, err := qr.ParseLevel(c.Render.Level); err != nil {
		return err
	}
	if c.Render.QuietZone < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "quiet_zone must not be negative, got %d", c.Render.QuietZone)
	}

	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (valid: file, redis, none)", c.Cache.Backend)
	}

	switch c.History.Backend {
	case "memory", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown history backend %q (valid: memory, mongo)", c.History.Backend)
	}

	if c.Server.MaxContentLength <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_content_length must be positive, got %d", c.Server.MaxContentLength)
	}
	if err := errors.ValidatePNGSize(c.Server.PNGSize); err != nil {
		return err
	}
	return nil
}

// Level returns the configured error-correction level.
// Call Validate first; unknown names fall back to the default level.
func (c *Config) Level() qr.Level {
	level, err := qr.ParseLevel(c.Render.Level)
	if err != nil {
		return qr.DefaultLevel
	}
	return level
}

// DefaultPath returns the standard config file location,
// ~/.config/qr2term/config.toml or its XDG override.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the cache directory for the file backend: the configured
// directory if set, otherwise ~/.cache/qr2term or its XDG override.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

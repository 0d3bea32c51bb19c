package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/timvisee/qr2term/pkg/errors"
	"github.com/timvisee/qr2term/pkg/qr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Level != "medium" {
		t.Errorf("Render.Level = %q, want %q", cfg.Render.Level, "medium")
	}
	if cfg.Render.QuietZone != qr.DefaultQuietZone {
		t.Errorf("Render.QuietZone = %d, want %d", cfg.Render.QuietZone, qr.DefaultQuietZone)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "file")
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("Server.Listen = %q, want %q", cfg.Server.Listen, ":8080")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if cfg.Render.Level != Default().Render.Level {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[render]
level = "high"
quiet_zone = 4

[cache]
backend = "redis"
redis_addr = "cache.internal:6379"

[server]
listen = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Render.Level != "high" {
		t.Errorf("Render.Level = %q, want %q", cfg.Render.Level, "high")
	}
	if cfg.Render.QuietZone != 4 {
		t.Errorf("Render.QuietZone = %d, want 4", cfg.Render.QuietZone)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "redis")
	}
	if cfg.Cache.RedisAddr != "cache.internal:6379" {
		t.Errorf("Cache.RedisAddr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Server.Listen != ":9090" {
		t.Errorf("Server.Listen = %q, want %q", cfg.Server.Listen, ":9090")
	}

	// Sections absent from the file keep their defaults.
	if cfg.Server.PNGSize != 512 {
		t.Errorf("Server.PNGSize = %d, want default 512", cfg.Server.PNGSize)
	}
	if cfg.History.Backend != "memory" {
		t.Errorf("History.Backend = %q, want default memory", cfg.History.Backend)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("level = [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() error = nil for malformed TOML")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"unknown level", func(c *Config) { c.Render.Level = "ultra" }, false},
		{"negative quiet zone", func(c *Config) { c.Render.QuietZone = -1 }, false},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"none cache backend", func(c *Config) { c.Cache.Backend = "none" }, true},
		{"unknown history backend", func(c *Config) { c.History.Backend = "postgres" }, false},
		{"zero max content length", func(c *Config) { c.Server.MaxContentLength = 0 }, false},
		{"zero png size", func(c *Config) { c.Server.PNGSize = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("Validate() error = nil, want error")
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := Default()
	cfg.Render.Level = "highest"
	if got := cfg.Level(); got != qr.LevelHighest {
		t.Errorf("Level() = %v, want %v", got, qr.LevelHighest)
	}

	cfg.Render.Level = "garbage"
	if got := cfg.Level(); got != qr.DefaultLevel {
		t.Errorf("Level() = %v, want default %v", got, qr.DefaultLevel)
	}
}

func TestDefaultPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if path != filepath.Join("/tmp/xdg-config", "qr2term", "config.toml") {
		t.Errorf("DefaultPath() = %q", path)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()

	// Explicit dir wins over XDG
	cfg.Cache.Dir = "/var/cache/qr"
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if dir != "/var/cache/qr" {
		t.Errorf("CacheDir() = %q", dir)
	}

	cfg.Cache.Dir = ""
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err = cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "qr2term") {
		t.Errorf("CacheDir() = %q", dir)
	}
}

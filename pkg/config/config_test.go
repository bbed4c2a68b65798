// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Verifies environment variable handling and invalid config rejection

package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8000", HTTPTimeout: 30},
		Cache: CacheConfig{
			Type:  "memory",
			Redis: RedisConfig{Address: "localhost:6379"},
			SQLite: SQLiteConfig{
				Path: "revoice-cache.db",
			},
		},
		Logging: LoggingConfig{Level: "info"},
		Workers: WorkerConfig{MaxWorkers: 4, QueueSize: 100},
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Server.Port)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Workers.MaxWorkers != 4 {
		t.Errorf("Workers.MaxWorkers = %d, want 4", cfg.Workers.MaxWorkers)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TYPE", "sqlite")
	t.Setenv("SQLITE_CACHE_PATH", "/tmp/test.db")
	t.Setenv("ENRICHMENT_WORKERS", "8")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Cache.Type != "sqlite" {
		t.Errorf("Cache.Type = %q, want sqlite", cfg.Cache.Type)
	}
	if cfg.Cache.SQLite.Path != "/tmp/test.db" {
		t.Errorf("SQLite.Path = %q", cfg.Cache.SQLite.Path)
	}
	if cfg.Workers.MaxWorkers != 8 {
		t.Errorf("MaxWorkers = %d, want 8", cfg.Workers.MaxWorkers)
	}
}

func TestLoadFromEnv_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("ENRICHMENT_WORKERS", "not-a-number")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned %v", err)
	}
	if cfg.Workers.MaxWorkers != 4 {
		t.Errorf("MaxWorkers = %d, want default 4", cfg.Workers.MaxWorkers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid memory", func(c *Config) {}, false},
		{"valid redis", func(c *Config) { c.Cache.Type = "redis" }, false},
		{"valid sqlite", func(c *Config) { c.Cache.Type = "sqlite" }, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"zero timeout", func(c *Config) { c.Server.HTTPTimeout = 0 }, true},
		{"unknown cache type", func(c *Config) { c.Cache.Type = "etcd" }, true},
		{"redis without address", func(c *Config) {
			c.Cache.Type = "redis"
			c.Cache.Redis.Address = ""
		}, true},
		{"sqlite without path", func(c *Config) {
			c.Cache.Type = "sqlite"
			c.Cache.SQLite.Path = ""
		}, true},
		{"zero workers", func(c *Config) { c.Workers.MaxWorkers = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

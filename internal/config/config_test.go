package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.Path != "data/cards.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Moxfield.RequestsPerSecond != 2 {
		t.Errorf("RequestsPerSecond = %v", cfg.Moxfield.RequestsPerSecond)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[database]
path = "/srv/cards.db"

[moxfield]
request_timeout = "10s"

[app]
debug_mode = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.Path != "/srv/cards.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if !cfg.App.DebugMode {
		t.Error("DebugMode not set")
	}
	// Unset sections keep their defaults.
	if cfg.Decks.Dir != "decks" {
		t.Errorf("Decks.Dir = %q", cfg.Decks.Dir)
	}
	if cfg.EDHREC.CacheTTL != "4h" {
		t.Errorf("EDHREC.CacheTTL = %q", cfg.EDHREC.CacheTTL)
	}

	timeout, err := cfg.GetMoxfieldTimeout()
	if err != nil || timeout != 10*time.Second {
		t.Errorf("GetMoxfieldTimeout = %v, %v", timeout, err)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("bad TOML should error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad timeout", func(c *Config) { c.Moxfield.RequestTimeout = "soon" }, true},
		{"zero rate", func(c *Config) { c.Moxfield.RequestsPerSecond = 0 }, true},
		{"bad ttl", func(c *Config) { c.EDHREC.CacheTTL = "often" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	t.Setenv("MOXFIELD_BEARER_TOKEN", "token-123")
	t.Setenv("MOXFIELD_USERNAME", "tester")

	creds := LoadCredentials()
	if creds.MoxfieldBearerToken != "token-123" || creds.MoxfieldUsername != "tester" {
		t.Errorf("creds = %+v", creds)
	}
}

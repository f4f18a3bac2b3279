package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}
	if cfg.Database.Path != "stock_data.db" {
		t.Errorf("unexpected default db path: %s", cfg.Database.Path)
	}
	if cfg.Web.Port != "8080" {
		t.Errorf("unexpected default port: %s", cfg.Web.Port)
	}
	if cfg.Schedule.SyncCron == "" {
		t.Error("expected a default sync cron spec")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/quotes.db
web:
  port: "9000"
schedule:
  sync_cron: "30 14 * * 1-5"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/quotes.db" {
		t.Errorf("db path not read: %s", cfg.Database.Path)
	}
	if cfg.Web.Port != "9000" {
		t.Errorf("port not read: %s", cfg.Web.Port)
	}
	if cfg.Schedule.SyncCron != "30 14 * * 1-5" {
		t.Errorf("cron not read: %s", cfg.Schedule.SyncCron)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TWSTOCK_DB_PATH", "/tmp/override.db")
	t.Setenv("TWSTOCK_PORT", "7777")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("env override ignored for db path: %s", cfg.Database.Path)
	}
	if cfg.Web.Port != "7777" {
		t.Errorf("env override ignored for port: %s", cfg.Web.Port)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

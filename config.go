package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the durable application settings. Per-invocation choices
// (stock codes, dates, mode) stay on the command line.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Directory struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"directory"`
	Schedule struct {
		SyncCron string `yaml:"sync_cron"`
	} `yaml:"schedule"`
	Web struct {
		Port string `yaml:"port"`
	} `yaml:"web"`
}

// LoadConfig reads config from a YAML file, then applies environment
// variable overrides and defaults. A missing file is not an error: every
// setting has a usable default.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TWSTOCK_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TWSTOCK_DIRECTORY_CSV"); v != "" {
		cfg.Directory.CSVPath = v
	}
	if v := os.Getenv("TWSTOCK_SYNC_CRON"); v != "" {
		cfg.Schedule.SyncCron = v
	}
	if v := os.Getenv("TWSTOCK_PORT"); v != "" {
		cfg.Web.Port = v
	}

	// Defaults
	if cfg.Database.Path == "" {
		cfg.Database.Path = "stock_data.db"
	}
	if cfg.Directory.CSVPath == "" {
		cfg.Directory.CSVPath = "stocks.csv"
	}
	if cfg.Schedule.SyncCron == "" {
		// TWSE closes at 13:30 Taipei time; refresh at 15:00 on weekdays.
		cfg.Schedule.SyncCron = "0 15 * * 1-5"
	}
	if cfg.Web.Port == "" {
		cfg.Web.Port = "8080"
	}

	return cfg, nil
}

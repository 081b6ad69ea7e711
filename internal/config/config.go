package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// strava
	StravaBaseURL   string `toml:"strava_base_url"`
	StravaTokenFile string `toml:"strava_token_file"`
	// training log spreadsheet
	SpreadsheetID        string `toml:"spreadsheet_id"`
	SheetsCredsPath      string `toml:"sheets_credentials_path"`
	AfternoonCutoffHour  int    `toml:"afternoon_cutoff_hour"`
	SheetCacheTTLSeconds int    `toml:"sheet_cache_ttl_seconds"`
	RateLimitWaitSeconds int    `toml:"rate_limit_wait_seconds"`
	// garmin connect
	GarminBaseURL             string `toml:"garmin_base_url"`
	BrowserWaitSeconds        int    `toml:"browser_wait_seconds"`
	BrowserHeadless           bool   `toml:"browser_headless"`
	BackfillLookbackDays      int    `toml:"backfill_lookback_days"`
	BackfillMatchToleranceMin int    `toml:"backfill_match_tolerance_min"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var confs Toml
	if _, err := toml.DecodeFile(path, &confs); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := confs.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.Environment = env
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.StravaBaseURL == "" {
		c.StravaBaseURL = "https://www.strava.com/api/v3"
	}
	if c.StravaTokenFile == "" {
		c.StravaTokenFile = "strava_tokens.json"
	}
	if c.GarminBaseURL == "" {
		c.GarminBaseURL = "https://connect.garmin.com"
	}
	if c.AfternoonCutoffHour == 0 {
		c.AfternoonCutoffHour = 12
	}
	if c.SheetCacheTTLSeconds == 0 {
		c.SheetCacheTTLSeconds = 60
	}
	if c.RateLimitWaitSeconds == 0 {
		c.RateLimitWaitSeconds = 30
	}
	if c.BrowserWaitSeconds == 0 {
		c.BrowserWaitSeconds = 20
	}
	if c.BackfillLookbackDays == 0 {
		c.BackfillLookbackDays = 365
	}
	if c.BackfillMatchToleranceMin == 0 {
		c.BackfillMatchToleranceMin = 1
	}
}

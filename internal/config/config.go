// Package config assembles the application configuration from the
// environment. Every knob has a sensible default so a bare `TELEGRAM_TOKEN` +
// `TELEGRAM_CHAT_ID` environment is enough for a production run, and an empty
// environment is enough for a dry run.
package config

import (
	"fmt"
	"time"

	"streakwatch/internal/source"
	"streakwatch/internal/usecase/alert"
	"streakwatch/pkg/config"
)

// Config is the full application configuration.
type Config struct {
	// Alerting

	Threshold          int
	AlertMode          alert.Mode
	MinRunInterval     time.Duration
	MaxPlausibleStreak int
	DryRun             bool
	ForceRebuild       bool

	// Structured API

	APIToken            string
	APIBaseURL          string
	APIFallbackDisabled bool

	// Telegram

	TelegramToken  string
	TelegramChatID int64

	// Sources

	Liga90ID        string
	LeagueName      string
	SourceOverrides []source.Row

	// State

	StatePath string
	StateDSN  string

	// Fetching

	FetchTimeout     time.Duration
	FetchMaxAttempts int
	FetchBackoffBase time.Duration

	// Logging. LOG_LEVEL is read by the logging package directly.

	LogFormat string
}

// Load reads the configuration from the environment. Invalid values of typed
// variables fall back to defaults inside the env helpers; only structurally
// invalid input (unknown alert mode, broken sources file) is an error.
func Load() (*Config, error) {
	mode, err := alert.ParseMode(config.GetEnvString("ALERT_MODE", string(alert.ModeEach)))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := &Config{
		Threshold:          config.GetEnvInt("THRESHOLD", 7),
		AlertMode:          mode,
		MinRunInterval:     config.GetEnvDuration("MIN_RUN_INTERVAL", 0),
		MaxPlausibleStreak: config.GetEnvInt("MAX_PLAUSIBLE_STREAK", 40),
		DryRun:             config.GetEnvBool("DRY_RUN", false),
		ForceRebuild:       config.GetEnvBool("FORCE_REBUILD", false),

		APIToken:            config.GetEnvString("API_TOKEN", ""),
		APIBaseURL:          config.GetEnvString("API_BASE_URL", "https://v3.football.api-sports.io"),
		APIFallbackDisabled: config.GetEnvBool("API_FALLBACK_DISABLED", false),

		TelegramToken:  config.GetEnvString("TELEGRAM_TOKEN", ""),
		TelegramChatID: config.GetEnvInt64("TELEGRAM_CHAT_ID", 0),

		Liga90ID:   config.GetEnvString("LIGA90_ID", "14072"),
		LeagueName: config.GetEnvString("LEAGUE_NAME", "Ekstraklasa"),

		StatePath: config.GetEnvString("STATE_PATH", "state.json"),
		StateDSN:  config.GetEnvString("STATE_DSN", ""),

		FetchTimeout:     config.GetEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchMaxAttempts: config.GetEnvInt("FETCH_MAX_ATTEMPTS", 5),
		FetchBackoffBase: config.GetEnvDuration("FETCH_BACKOFF_BASE", 2*time.Second),

		LogFormat: config.GetEnvString("LOG_FORMAT", "json"),
	}

	if path := config.GetEnvString("SOURCES_FILE", ""); path != "" {
		rows, err := source.LoadOverrides(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg.SourceOverrides = rows
	}

	return cfg, nil
}

// AlertConfig narrows the configuration to the alert decision layer.
func (c *Config) AlertConfig() alert.Config {
	return alert.Config{
		Threshold:    c.Threshold,
		Mode:         c.AlertMode,
		MaxPlausible: c.MaxPlausibleStreak,
	}
}

// SourceConfig narrows the configuration to the source resolver.
func (c *Config) SourceConfig() source.Config {
	return source.Config{
		APIBaseURL: c.APIBaseURL,
		APIToken:   c.APIToken,
		Liga90ID:   c.Liga90ID,
		Overrides:  c.SourceOverrides,
	}
}

// TelegramConfigured reports whether a live Telegram channel can be built.
func (c *Config) TelegramConfigured() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

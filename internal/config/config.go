// Package config loads and validates the report generator configuration.
// Configuration is optional: when no config file exists, the defaults
// reproduce the fixed paths and chart settings of the original study, so a
// bare invocation still produces the report.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Report   ReportConfig   `mapstructure:"report"`
	Charts   ChartsConfig   `mapstructure:"charts"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatasetConfig holds input file locations and the tracked index universe
type DatasetConfig struct {
	ObservationsPath string   `mapstructure:"observations_path"`
	EventsPath       string   `mapstructure:"events_path"`
	ReferenceIndex   string   `mapstructure:"reference_index"`
	Indices          []string `mapstructure:"indices"`
}

// ReportConfig holds output document configuration
type ReportConfig struct {
	OutputPath string `mapstructure:"output_path"`
	Title      string `mapstructure:"title"`
	PlotlyURL  string `mapstructure:"plotly_url"`
}

// ChartsConfig holds figure sizing and shared axis ranges
type ChartsConfig struct {
	PanelHeight     int     `mapstructure:"panel_height"`
	AnnotatedHeight int     `mapstructure:"annotated_height"`
	DrawdownMin     float64 `mapstructure:"drawdown_min"` // shared y floor, percent
	DrawdownMax     float64 `mapstructure:"drawdown_max"` // shared y headroom, percent
}

// TelegramConfig holds the optional completion notification configuration
type TelegramConfig struct {
	BotToken   string `mapstructure:"bot_token"`
	ChatID     string `mapstructure:"chat_id"`
	MaxRetries int    `mapstructure:"max_retries"`
	Enabled    bool   `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// A missing config file is not an error: defaults apply unchanged.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("BUBBLE_REPORT")
	v.AutomaticEnv()

	// Read config file when present
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
// Defaults mirror the fixed constants of the original study.
func setDefaults(v *viper.Viper) {
	// Dataset defaults
	v.SetDefault("dataset.observations_path", "data_processed/indices_dotcom_ia_dataset.csv")
	v.SetDefault("dataset.events_path", "eventos_dotcom_ia.csv")
	v.SetDefault("dataset.reference_index", "NASDAQ")
	v.SetDefault("dataset.indices", []string{"NASDAQ", "SP500"})

	// Report defaults
	v.SetDefault("report.output_path", "index.html")
	v.SetDefault("report.title", "Dos burbujas, una narrativa: Nasdaq y S&P 500 entre la puntocom y la IA")
	v.SetDefault("report.plotly_url", "https://cdn.plot.ly/plotly-2.35.2.min.js")

	// Charts defaults
	v.SetDefault("charts.panel_height", 500)
	v.SetDefault("charts.annotated_height", 700)
	v.SetDefault("charts.drawdown_min", -100.0)
	v.SetDefault("charts.drawdown_max", 10.0)

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Dataset config
	if c.Dataset.ObservationsPath == "" {
		return fmt.Errorf("dataset.observations_path is required")
	}
	if c.Dataset.EventsPath == "" {
		return fmt.Errorf("dataset.events_path is required")
	}
	if c.Dataset.ReferenceIndex == "" {
		return fmt.Errorf("dataset.reference_index is required")
	}
	if len(c.Dataset.Indices) == 0 {
		return fmt.Errorf("dataset.indices must contain at least one index")
	}
	referenceTracked := false
	for _, idx := range c.Dataset.Indices {
		if idx == c.Dataset.ReferenceIndex {
			referenceTracked = true
			break
		}
	}
	if !referenceTracked {
		return fmt.Errorf("dataset.reference_index %q must be one of dataset.indices", c.Dataset.ReferenceIndex)
	}

	// Validate Report config
	if c.Report.OutputPath == "" {
		return fmt.Errorf("report.output_path is required")
	}
	if c.Report.Title == "" {
		return fmt.Errorf("report.title is required")
	}
	if c.Report.PlotlyURL == "" {
		return fmt.Errorf("report.plotly_url is required")
	}

	// Validate Charts config
	if c.Charts.PanelHeight < 100 {
		return fmt.Errorf("charts.panel_height must be at least 100")
	}
	if c.Charts.AnnotatedHeight < 100 {
		return fmt.Errorf("charts.annotated_height must be at least 100")
	}
	if c.Charts.DrawdownMin >= c.Charts.DrawdownMax {
		return fmt.Errorf("charts.drawdown_min must be below charts.drawdown_max")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

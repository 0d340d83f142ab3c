// Package config loads pipeline configuration from an optional
// config.yaml with LEDGER_-prefixed environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Notion     NotionConfig     `mapstructure:"notion"`
}

type DatabaseConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type GeminiConfig struct {
	Model string `mapstructure:"model"`
}

type ExtractionConfig struct {
	ChunkTokens    int `mapstructure:"chunk_tokens"`
	OverlapTokens  int `mapstructure:"overlap_tokens"`
	Concurrency    int `mapstructure:"concurrency"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type NotionConfig struct {
	Token      string `mapstructure:"token"`
	DatabaseID string `mapstructure:"database_id"`
}

// Load reads config.yaml from the working directory when present and
// applies environment overrides (e.g. LEDGER_DATABASE_DSN).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can bind its override
	// even when no config file exists.
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("extraction.chunk_tokens", 2500)
	v.SetDefault("extraction.overlap_tokens", 250)
	v.SetDefault("extraction.concurrency", 4)
	v.SetDefault("extraction.timeout_seconds", 60)
	v.SetDefault("notion.token", "")
	v.SetDefault("notion.database_id", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.Load: read config file: %w", err)
		}
		// No file is fine; env and defaults cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshal: %w", err)
	}
	return &cfg, nil
}

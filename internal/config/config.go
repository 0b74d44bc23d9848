package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Lookup   LookupConfig   `mapstructure:"lookup"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Report   ReportConfig   `mapstructure:"report"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LookupConfig holds configuration for the external profile lookup service
type LookupConfig struct {
	APIBaseURL       string        `mapstructure:"api_base_url"`
	APIKey           string        `mapstructure:"api_key"`
	APIHost          string        `mapstructure:"api_host"` // Value for the x-rapidapi-host header
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRetries       int           `mapstructure:"max_retries"`
	RetryDelayBase   time.Duration `mapstructure:"retry_delay_base"`
	RecentPostsCount int           `mapstructure:"recent_posts_count"`
}

// GeminiConfig holds configuration for the AI classification dependency
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	MaxRetries  int           `mapstructure:"max_retries"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
	BackoffCap  time.Duration `mapstructure:"backoff_cap"`
}

// AnalyzerConfig holds batch orchestration and pacing configuration
type AnalyzerConfig struct {
	BatchSize       int           `mapstructure:"batch_size"`
	BatchPause      time.Duration `mapstructure:"batch_pause"`       // Pause between batches
	MinCallInterval time.Duration `mapstructure:"min_call_interval"` // Minimum delay before each AI call
	CooldownEvery   int           `mapstructure:"cooldown_every"`    // AI calls between long cooldowns
	Cooldown        time.Duration `mapstructure:"cooldown"`          // Long cooldown duration
	MaxRunDuration  time.Duration `mapstructure:"max_run_duration"`  // Wall-clock ceiling; 0 disables
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// ReportConfig holds result export configuration
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// StorageConfig holds task-state store configuration
type StorageConfig struct {
	FilePath string `mapstructure:"file_path"` // Empty disables persistence
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("BRANDLENS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Lookup defaults
	v.SetDefault("lookup.api_base_url", "https://tiktok-scraper7.p.rapidapi.com")
	v.SetDefault("lookup.api_host", "tiktok-scraper7.p.rapidapi.com")
	v.SetDefault("lookup.timeout", "15s")
	v.SetDefault("lookup.max_retries", 3)
	v.SetDefault("lookup.retry_delay_base", "1s")
	v.SetDefault("lookup.recent_posts_count", 20)

	// Gemini defaults
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.max_retries", 3)
	v.SetDefault("gemini.backoff_base", "1s")
	v.SetDefault("gemini.backoff_cap", "2m")

	// Analyzer defaults
	v.SetDefault("analyzer.batch_size", 5)
	v.SetDefault("analyzer.batch_pause", "2s")
	v.SetDefault("analyzer.min_call_interval", "1s")
	v.SetDefault("analyzer.cooldown_every", 50)
	v.SetDefault("analyzer.cooldown", "5s")
	v.SetDefault("analyzer.max_run_duration", "0")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Report defaults
	v.SetDefault("report.output_dir", "./analyzed_data")

	// Storage defaults
	v.SetDefault("storage.file_path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Lookup.APIBaseURL == "" {
		return fmt.Errorf("lookup.api_base_url is required")
	}
	if c.Lookup.Timeout < time.Second {
		return fmt.Errorf("lookup.timeout must be at least 1 second")
	}
	if c.Lookup.MaxRetries < 1 {
		return fmt.Errorf("lookup.max_retries must be at least 1")
	}
	if c.Lookup.RecentPostsCount < 1 || c.Lookup.RecentPostsCount > 50 {
		return fmt.Errorf("lookup.recent_posts_count must be between 1 and 50")
	}

	if c.Gemini.MaxRetries < 1 {
		return fmt.Errorf("gemini.max_retries must be at least 1")
	}
	if c.Gemini.BackoffBase <= 0 {
		return fmt.Errorf("gemini.backoff_base must be positive")
	}
	if c.Gemini.BackoffCap < c.Gemini.BackoffBase {
		return fmt.Errorf("gemini.backoff_cap must be >= gemini.backoff_base")
	}

	if c.Analyzer.BatchSize < 1 {
		return fmt.Errorf("analyzer.batch_size must be at least 1")
	}
	if c.Analyzer.BatchPause < 0 {
		return fmt.Errorf("analyzer.batch_pause must not be negative")
	}
	if c.Analyzer.MinCallInterval < 0 {
		return fmt.Errorf("analyzer.min_call_interval must not be negative")
	}
	if c.Analyzer.CooldownEvery < 1 {
		return fmt.Errorf("analyzer.cooldown_every must be at least 1")
	}
	if c.Analyzer.MaxRunDuration < 0 {
		return fmt.Errorf("analyzer.max_run_duration must not be negative")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	if c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir is required")
	}

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

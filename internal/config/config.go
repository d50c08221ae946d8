// Package config handles configuration loading for NewsPulse.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	News    NewsConfig    `mapstructure:"news"    yaml:"news"`
	LLM     LLMConfig     `mapstructure:"llm"     yaml:"llm"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string   `mapstructure:"host"                 yaml:"host"`
	Port               int      `mapstructure:"port"                 yaml:"port"`
	CORSOrigins        []string `mapstructure:"cors_origins"         yaml:"cors_origins"`
	ReadTimeoutSec     int      `mapstructure:"read_timeout_sec"     yaml:"read_timeout_sec"`
	WriteTimeoutSec    int      `mapstructure:"write_timeout_sec"    yaml:"write_timeout_sec"`
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`
}

// NewsConfig holds news source settings.
type NewsConfig struct {
	Provider          string   `mapstructure:"provider"            yaml:"provider"` // "newsapi" or "rss"
	APIKey            string   `mapstructure:"api_key"             yaml:"api_key"`
	BaseURL           string   `mapstructure:"base_url"            yaml:"base_url"`
	PageSize          int      `mapstructure:"page_size"           yaml:"page_size"`
	Language          string   `mapstructure:"language"            yaml:"language"`
	WindowHours       int      `mapstructure:"window_hours"        yaml:"window_hours"`
	RequestTimeoutSec int      `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`
	Feeds             []string `mapstructure:"feeds"               yaml:"feeds"` // RSS provider only
	TrendingTTLSec    int      `mapstructure:"trending_ttl_sec"    yaml:"trending_ttl_sec"`
}

// LLMConfig holds LLM provider configuration for the chat assistant.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"    yaml:"provider"` // "gemini" or "openai"
	GeminiKey   string  `mapstructure:"gemini_key"  yaml:"gemini_key"`
	OpenAIKey   string  `mapstructure:"openai_key"  yaml:"openai_key"`
	Model       string  `mapstructure:"model"       yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"  yaml:"max_tokens"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"        yaml:"level"` // "debug", "info", "warn", "error"
	Dir        string `mapstructure:"dir"          yaml:"dir"`
	Console    bool   `mapstructure:"console"      yaml:"console"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"  yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.newspulse/config.yaml (home directory)
//  3. /etc/newspulse/config.yaml (system)
//
// Environment variables override config file values.
// Format: NEWSPULSE_<SECTION>_<KEY>, e.g., NEWSPULSE_NEWS_API_KEY.
// The bare NEWS_API_KEY, GEMINI_API_KEY and OPENAI_API_KEY variables
// are also honored so keys can be shared with other tools.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".newspulse"))
	v.AddConfigPath("/etc/newspulse")

	// Environment variable settings
	v.SetEnvPrefix("NEWSPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Override sensitive values from environment
	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("NEWSPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that would break at
// runtime. Missing API keys are not errors: the server starts without
// them and degrades the affected features instead.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be 1-65535", c.Server.Port)
	}
	switch c.News.Provider {
	case "newsapi", "rss":
	default:
		return fmt.Errorf("invalid news.provider %q: must be \"newsapi\" or \"rss\"", c.News.Provider)
	}
	if c.News.PageSize < 1 || c.News.PageSize > 100 {
		return fmt.Errorf("invalid news.page_size %d: must be 1-100", c.News.PageSize)
	}
	if c.News.Language == "" {
		return fmt.Errorf("news.language must not be empty")
	}
	if c.News.WindowHours < 1 {
		return fmt.Errorf("invalid news.window_hours %d: must be >= 1", c.News.WindowHours)
	}
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("invalid llm.provider %q: must be \"gemini\" or \"openai\"", c.LLM.Provider)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q: must be debug, info, warn or error", c.Logging.Level)
	}
	return nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.read_timeout_sec", 15)
	v.SetDefault("server.write_timeout_sec", 30)
	v.SetDefault("server.shutdown_timeout_sec", 15)

	// News defaults
	v.SetDefault("news.provider", "newsapi")
	v.SetDefault("news.base_url", "https://newsapi.org/v2")
	v.SetDefault("news.page_size", 10)
	v.SetDefault("news.language", "en")
	v.SetDefault("news.window_hours", 24)
	v.SetDefault("news.request_timeout_sec", 10)
	v.SetDefault("news.feeds", []string{
		"https://feeds.bbci.co.uk/news/rss.xml",
		"https://feeds.reuters.com/reuters/topNews",
	})
	v.SetDefault("news.trending_ttl_sec", 300) // 5 minutes

	// LLM defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 1024)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.dir", "logs")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 28)
}

// overrideFromEnv explicitly reads sensitive keys from environment
// variables. The prefixed form wins over the bare form.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		cfg.News.APIKey = key
	}
	if key := os.Getenv("NEWSPULSE_NEWS_API_KEY"); key != "" {
		cfg.News.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	}
	if key := os.Getenv("NEWSPULSE_LLM_GEMINI_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.OpenAIKey = key
	}
	if key := os.Getenv("NEWSPULSE_LLM_OPENAI_KEY"); key != "" {
		cfg.LLM.OpenAIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete dailydo configuration
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PathsConfig controls where dailydo stores journal files
type PathsConfig struct {
	// BaseDir is the directory holding one Markdown file per date.
	// If empty, the DAILY_TODO_DIR environment variable is honored,
	// then "daily-todo" under the current working directory.
	// Supports ~ for home directory expansion.
	BaseDir string `mapstructure:"base_dir"`
}

// LLMConfig controls how the LLM provider is reached
type LLMConfig struct {
	// BaseURL is the OpenAI-compatible endpoint root. Empty selects the
	// default OpenAI API.
	BaseURL string `mapstructure:"base_url"`
	// Model is the chat model name (default: "gpt-4o-mini")
	Model string `mapstructure:"model"`
	// APIKeyEnv names the environment variable carrying the API key
	// (default: "OPENAI_API_KEY"). The key itself never lives in the
	// config file.
	APIKeyEnv string `mapstructure:"api_key_env"`
	// TimeoutSeconds bounds a single LLM call, including retries (default: 60)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// MaxRetries bounds retry attempts for transient provider failures (default: 3)
	MaxRetries int `mapstructure:"max_retries"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// ResolveBaseDir returns the journal directory, applying the fallback
// chain: configured value, DAILY_TODO_DIR, then "daily-todo" under cwd.
// A leading ~ expands to the home directory.
func (p *PathsConfig) ResolveBaseDir(cwd string) string {
	dir := strings.TrimSpace(p.BaseDir)
	if dir == "" {
		dir = strings.TrimSpace(os.Getenv("DAILY_TODO_DIR"))
	}
	if dir == "" {
		return filepath.Join(cwd, "daily-todo")
	}
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	return dir
}

// APIKey reads the provider key from the configured environment variable.
func (l *LLMConfig) APIKey() string {
	name := l.APIKeyEnv
	if name == "" {
		name = "OPENAI_API_KEY"
	}
	return strings.TrimSpace(os.Getenv(name))
}

// Timeout returns the per-call LLM timeout as a duration.
func (l *LLMConfig) Timeout() time.Duration {
	seconds := l.TimeoutSeconds
	if seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

// Default returns a Config with all default values
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			BaseDir: "",
		},
		LLM: LLMConfig{
			BaseURL:        "",
			Model:          "gpt-4o-mini",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 60,
			MaxRetries:     3,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers all default values with viper so they're
// available even without a config file
func SetDefaults() {
	defaults := Default()

	// Paths defaults
	viper.SetDefault("paths.base_dir", defaults.Paths.BaseDir)

	// LLM defaults
	viper.SetDefault("llm.base_url", defaults.LLM.BaseURL)
	viper.SetDefault("llm.model", defaults.LLM.Model)
	viper.SetDefault("llm.api_key_env", defaults.LLM.APIKeyEnv)
	viper.SetDefault("llm.timeout_seconds", defaults.LLM.TimeoutSeconds)
	viper.SetDefault("llm.max_retries", defaults.LLM.MaxRetries)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dailydo")
	}
	// Fall back to ~/.config/dailydo
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dailydo"
	}
	return filepath.Join(home, ".config", "dailydo")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Package config loads service configuration from file, environment and
// defaults. Precedence: env > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	DBPath     string `mapstructure:"db_path" yaml:"db_path"`
	UploadsDir string `mapstructure:"uploads_dir" yaml:"uploads_dir"`
	PageSize   int    `mapstructure:"page_size" yaml:"page_size"`

	// AI service collaborator
	AIAPIKey  string `mapstructure:"ai_api_key" yaml:"ai_api_key"`
	AIBaseURL string `mapstructure:"ai_base_url" yaml:"ai_base_url"`
	AIModel   string `mapstructure:"ai_model" yaml:"ai_model"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`
}

// HTTPTimeout returns the AI client timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

// RetryBaseDelay returns the AI client base backoff delay.
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMs) * time.Millisecond
}

// RetryMaxDelay returns the AI client backoff cap.
func (c *Config) RetryMaxDelay() time.Duration {
	return time.Duration(c.RetryMaxDelayMs) * time.Millisecond
}

// Load loads configuration from cfgFile (optional), env, and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WIZARD")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "wizard.db")
	v.SetDefault("uploads_dir", "uploads")
	v.SetDefault("page_size", 10)
	v.SetDefault("ai_base_url", "https://api.openai.com/v1")
	v.SetDefault("ai_model", "gpt-4o-mini")
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)

	// Ensure env vars are picked up even without a config file.
	for _, key := range []string{"listen_addr", "db_path", "uploads_dir", "page_size",
		"ai_api_key", "ai_base_url", "ai_model",
		"http_timeout_sec", "retry_max_attempts", "retry_base_delay_ms", "retry_max_delay_ms"} {
		_ = v.BindEnv(key)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".dashboard-wizard"))
		}
		v.AddConfigPath(".")
		// Missing default config file is fine.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to cfgFile, or to
// ~/.dashboard-wizard/config.yaml when cfgFile is empty.
func Save(c *Config, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".dashboard-wizard")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

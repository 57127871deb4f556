// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL      string   `mapstructure:"api_base_url"`
	Chains          []string `mapstructure:"chains"`
	RequestTimeout  int      `mapstructure:"request_timeout"`
	RetryMaxElapsed int      `mapstructure:"retry_max_elapsed"`
	DebounceDelay   int      `mapstructure:"debounce_delay"`
	MaxInterleaved  int      `mapstructure:"max_interleaved"`
	RefreshInterval int      `mapstructure:"refresh_interval"`
	MaxConcurrent   int      `mapstructure:"max_concurrent"`
	DataDir         string   `mapstructure:"data_dir"`
	LogFile         string   `mapstructure:"log_file"`
	DebugLogging    bool     `mapstructure:"debug_logging"`
}

// Durations are configured in milliseconds.
const (
	DefaultAPIBaseURL      = "https://api.dexscreener.com"
	DefaultRequestTimeout  = 10000
	DefaultRetryMaxElapsed = 15000
	DefaultDebounceDelay   = 300
	DefaultMaxInterleaved  = 16
	DefaultRefreshInterval = 5000
	DefaultMaxConcurrent   = 4
	DefaultDataDir         = "data"
	DefaultLogFile         = "logs/dexwatch.log"
)

var defaultChains = []string{"solana", "ethereum", "base", "bsc"}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"api_base_url":      DefaultAPIBaseURL,
		"chains":            defaultChains,
		"request_timeout":   DefaultRequestTimeout,
		"retry_max_elapsed": DefaultRetryMaxElapsed,
		"debounce_delay":    DefaultDebounceDelay,
		"max_interleaved":   DefaultMaxInterleaved,
		"refresh_interval":  DefaultRefreshInterval,
		"max_concurrent":    DefaultMaxConcurrent,
		"data_dir":          DefaultDataDir,
		"log_file":          DefaultLogFile,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file means pure defaults; an unreadable one is an error.
		if !os.IsNotExist(err) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := loadEnvironmentVariables(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if err := validateHTTPURL(cfg.APIBaseURL); err != nil {
		return errors.New("invalid api_base_url")
	}
	if len(cfg.Chains) == 0 {
		return errors.New("chains is empty")
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if cfg.RequestTimeout <= 0 {
		return errors.New("invalid request_timeout")
	}
	if cfg.RetryMaxElapsed <= 0 {
		return errors.New("invalid retry_max_elapsed")
	}
	if cfg.DebounceDelay <= 0 {
		return errors.New("invalid debounce_delay")
	}
	if cfg.MaxInterleaved <= 0 {
		return errors.New("invalid max_interleaved")
	}
	if cfg.RefreshInterval <= 0 {
		return errors.New("invalid refresh_interval")
	}
	if cfg.MaxConcurrent <= 0 {
		return errors.New("invalid max_concurrent")
	}
	return nil
}

func validateHTTPURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, "http") {
		return errors.New("invalid URL protocol")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) error {
	v.AutomaticEnv()
	v.SetEnvPrefix("DEXWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBaseURL := v.GetString("API_BASE_URL")
	if envBaseURL != "" {
		cfg.APIBaseURL = envBaseURL
	}

	envChains := v.GetString("CHAINS")
	if envChains != "" {
		chains := strings.Split(envChains, ",")
		var cleanChains []string
		for _, chain := range chains {
			clean := strings.TrimSpace(chain)
			if clean != "" {
				cleanChains = append(cleanChains, clean)
			}
		}
		if len(cleanChains) > 0 {
			cfg.Chains = cleanChains
		}
	}
	return nil
}

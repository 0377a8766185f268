// Package config handles the XDG configuration directory, the optional
// config file and environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todoctl"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// EnvFile is an optional dotenv file inside the config directory.
	EnvFile = ".env"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// EnvPrefix prefixes every environment override (TODOCTL_BASE_URL, ...).
	EnvPrefix = "TODOCTL"

	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single backend call.
	DefaultTimeout = 30 * time.Second
)

// Setting keys understood by the config file and `todoctl config set`.
const (
	KeyBaseURL          = "base_url"
	KeyToken            = "token"
	KeyTimeout          = "timeout"
	KeyRateLimit        = "rate_limit"
	KeyBatchConcurrency = "batch_concurrency"
)

// Keys lists every supported setting key.
var Keys = []string{KeyBaseURL, KeyToken, KeyTimeout, KeyRateLimit, KeyBatchConcurrency}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// BaseURL is the REST backend address.
	BaseURL string

	// Token is a bearer token sent with every request, if set.
	Token string

	// Timeout bounds each backend call.
	Timeout time.Duration

	// RateLimit caps requests per second; 0 disables the limiter.
	RateLimit float64

	// BatchConcurrency caps in-flight requests of a batch update; 0 means no cap.
	BatchConcurrency int
}

// Settings is the on-disk form of config.yaml.
type Settings struct {
	BaseURL          string  `yaml:"base_url,omitempty"`
	Token            string  `yaml:"token,omitempty"`
	Timeout          string  `yaml:"timeout,omitempty"`
	RateLimit        float64 `yaml:"rate_limit,omitempty"`
	BatchConcurrency int     `yaml:"batch_concurrency,omitempty"`
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todoctl or $HOME/.config/todoctl.
// Settings come from config.yaml, then .env, then TODOCTL_* variables.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) load() error {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(c.EnvPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("invalid %s: %w", EnvFile, err)
	}

	v := viper.New()
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyBatchConcurrency, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if c.HasConfigFile() {
		v.SetConfigFile(c.ConfigPath())
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	}

	c.BaseURL = strings.TrimRight(v.GetString(KeyBaseURL), "/")
	c.Token = v.GetString(KeyToken)
	c.Timeout = v.GetDuration(KeyTimeout)
	c.RateLimit = v.GetFloat64(KeyRateLimit)
	c.BatchConcurrency = v.GetInt(KeyBatchConcurrency)

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid %s: %v", KeyRateLimit, c.RateLimit)
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("invalid %s: %d", KeyBatchConcurrency, c.BatchConcurrency)
	}

	// Fall back to the token saved by `todoctl login`
	if c.Token == "" && c.HasToken() {
		tok, err := c.LoadToken()
		if err != nil {
			return err
		}
		c.Token = tok.AccessToken
	}
	return nil
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnvPath returns the path to the optional .env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasConfigFile checks if config.yaml exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// LoadToken reads the stored token.
func (c *Config) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TokenFile, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFile, err)
	}
	return &tok, nil
}

// SaveToken writes the token file with mode 0600.
func (c *Config) SaveToken(tok *oauth2.Token) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenPath(), data, 0600)
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// ReadSettings reads config.yaml. A missing file yields empty settings.
func (c *Config) ReadSettings() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return s, nil
}

// WriteSettings writes config.yaml with mode 0600.
func (c *Config) WriteSettings(s Settings) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.ConfigPath(), data, 0600)
}

// Set validates value for key and stores it in config.yaml.
func (c *Config) Set(key, value string) error {
	s, err := c.ReadSettings()
	if err != nil {
		return err
	}

	switch key {
	case KeyBaseURL:
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("invalid %s: %s", key, value)
		}
		s.BaseURL = strings.TrimRight(value, "/")
	case KeyToken:
		s.Token = value
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: %s", key, value)
		}
		s.Timeout = d.String()
	case KeyRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid %s: %s", key, value)
		}
		s.RateLimit = f
	case KeyBatchConcurrency:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s: %s", key, value)
		}
		s.BatchConcurrency = n
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	return c.WriteSettings(s)
}

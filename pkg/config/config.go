package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvProduction hides upstream error details from clients
	EnvProduction  = "production"
	EnvDevelopment = "development"

	// DefaultProviderHost is the scraping provider all three endpoints live on
	DefaultProviderHost = "instagram-scraper-stable-api.p.rapidapi.com"
)

// Config holds all configuration options for the dashboard backend
type Config struct {
	// Upstream scraping provider
	Provider ProviderConfig `yaml:"provider" json:"provider"`

	// HTTP listener
	Server ServerConfig `yaml:"server" json:"server"`

	// Engagement analytics
	Analytics AnalyticsConfig `yaml:"analytics" json:"analytics"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Prometheus metrics
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Error reporting
	Sentry SentryConfig `yaml:"sentry" json:"sentry"`
}

// ProviderConfig holds the upstream provider settings.
// APIKey is never written back to disk.
type ProviderConfig struct {
	APIKey  string        `yaml:"-" json:"-"`
	Host    string        `yaml:"host" json:"host"`
	BaseURL string        `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `yaml:"port" json:"port"`
	Environment     string        `yaml:"environment" json:"environment"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// AnalyticsConfig holds engagement calculation settings
type AnalyticsConfig struct {
	SampleSize int `yaml:"sample_size" json:"sample_size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file" json:"file"`
}

// MetricsConfig holds metrics exposition settings
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// SentryConfig holds error reporting settings
type SentryConfig struct {
	DSN string `yaml:"dsn" json:"dsn"`
}

// KeySource supplies the provider API key when no file or env value is set
type KeySource interface {
	APIKey() (string, error)
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Host:    DefaultProviderHost,
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Port:            3001,
			Environment:     EnvDevelopment,
			ShutdownTimeout: 10 * time.Second,
		},
		Analytics: AnalyticsConfig{
			SampleSize: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, EnvProduction)
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if key := os.Getenv("RAPIDAPI_KEY"); key != "" {
		c.Provider.APIKey = key
	}
	if host := os.Getenv("RAPIDAPI_HOST"); host != "" {
		c.Provider.Host = host
	}
	if baseURL := os.Getenv("IGDASH_PROVIDER_BASE_URL"); baseURL != "" {
		c.Provider.BaseURL = baseURL
	}

	if port := os.Getenv("PORT"); port != "" {
		val, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		c.Server.Port = val
	}

	// NODE_ENV is honored so existing deployment files keep working
	if env := os.Getenv("NODE_ENV"); env != "" {
		c.Server.Environment = env
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		c.Server.Environment = env
	}

	if size := os.Getenv("IGDASH_SAMPLE_SIZE"); size != "" {
		val, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("invalid IGDASH_SAMPLE_SIZE %q: %w", size, err)
		}
		c.Analytics.SampleSize = val
	}

	if logLevel := os.Getenv("IGDASH_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("IGDASH_LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if enabled := os.Getenv("IGDASH_METRICS_ENABLED"); enabled != "" {
		c.Metrics.Enabled = strings.ToLower(enabled) == "true"
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		c.Sentry.DSN = dsn
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".igdash.yaml",
		".igdash.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "igdash", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "igdash", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Provider.APIKey == "" {
		errs = append(errs, errors.New("RAPIDAPI_KEY is required"))
	}
	if c.Provider.Host == "" {
		errs = append(errs, errors.New("RAPIDAPI_HOST is required"))
	}
	if c.Provider.Timeout <= 0 {
		errs = append(errs, errors.New("provider timeout must be positive"))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Server.Port))
	}

	if c.Analytics.SampleSize <= 0 {
		errs = append(errs, errors.New("analytics sample size must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	validFormats := map[string]bool{
		"console": true, "json": true,
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, errors.New("invalid log format"))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, errors.New("metrics path must start with /"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if port, ok := flags["port"].(int); ok && port > 0 {
		c.Server.Port = port
	}
	if env, ok := flags["env"].(string); ok && env != "" {
		c.Server.Environment = env
	}
	if host, ok := flags["host"].(string); ok && host != "" {
		c.Provider.Host = host
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat, ok := flags["log-format"].(string); ok && logFormat != "" {
		c.Logging.Format = logFormat
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: flags > environment > .env file > config file > key source > defaults.
// keys may be nil.
func Load(configPath string, flags map[string]interface{}, keys KeySource) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igdash.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if config.Provider.APIKey == "" && keys != nil {
		if key, err := keys.APIKey(); err == nil {
			config.Provider.APIKey = key
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// Config represents the application configuration
type Config struct {
	Dashboard DashboardConfig `yaml:"dashboard"`
	API       APIConfig       `yaml:"api"`
	LogLevel  string          `yaml:"log_level"`
}

// DashboardConfig represents the dashboard and static asset server
type DashboardConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// StaticDir replaces the embedded assets when set
	StaticDir string `yaml:"static_dir"`
	Locale    string `yaml:"locale"`
	Timezone  string `yaml:"timezone"`
}

// APIConfig represents the Kubernetes-facing backend API server
type APIConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Kubeconfig string `yaml:"kubeconfig"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dashboard: DashboardConfig{
			Host:           "0.0.0.0",
			Port:           8081,
			APIBaseURL:     "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
			Locale:         "en",
			Timezone:       "Local",
		},
		API: APIConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    8080,
		},
		LogLevel: "info",
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment variables are applied on top either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides overrides configuration with environment variables
func applyEnvOverrides(cfg *Config) error {
	if baseURL := os.Getenv("CRONIQ_API_BASE_URL"); baseURL != "" {
		cfg.Dashboard.APIBaseURL = baseURL
	}
	if port := os.Getenv("CRONIQ_DASHBOARD_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("CRONIQ_DASHBOARD_PORT: %w", err)
		}
		cfg.Dashboard.Port = p
	}
	if port := os.Getenv("CRONIQ_API_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("CRONIQ_API_PORT: %w", err)
		}
		cfg.API.Port = p
	}
	if enabled := os.Getenv("CRONIQ_API_ENABLED"); enabled != "" {
		b, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("CRONIQ_API_ENABLED: %w", err)
		}
		cfg.API.Enabled = b
	}
	if level := os.Getenv("CRONIQ_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if kubeconfig := os.Getenv("KUBECONFIG"); kubeconfig != "" && cfg.API.Kubeconfig == "" {
		cfg.API.Kubeconfig = kubeconfig
	}
	return nil
}

// Validate checks the values that would otherwise fail at startup
func (c *Config) Validate() error {
	if c.Dashboard.Port <= 0 || c.Dashboard.Port > 65535 {
		return fmt.Errorf("dashboard.port %d out of range", c.Dashboard.Port)
	}
	if c.API.Enabled && (c.API.Port <= 0 || c.API.Port > 65535) {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	u, err := url.Parse(c.Dashboard.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("dashboard.api_base_url %q is not an absolute URL", c.Dashboard.APIBaseURL)
	}
	if c.Dashboard.RequestTimeout <= 0 {
		return fmt.Errorf("dashboard.request_timeout must be positive")
	}
	return nil
}

// DashboardAddr returns the listen address of the dashboard server
func (c *Config) DashboardAddr() string {
	return fmt.Sprintf("%s:%d", c.Dashboard.Host, c.Dashboard.Port)
}

// APIAddr returns the listen address of the backend API server
func (c *Config) APIAddr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// Save saves configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given
const DefaultPath = "productapi.yml"

// Environment overrides applied after the file is parsed
const (
	EnvDatabaseURL = "PRODUCTAPI_DATABASE_URL"
	EnvHTTPAddress = "PRODUCTAPI_HTTP_ADDRESS"
)

type Config struct {
	DatabaseURL    string       `yaml:"database_url"`
	MigrationTable string       `yaml:"migration_table"`
	HTTP           HTTPConfig   `yaml:"http"`
	Logger         LoggerConfig `yaml:"logger"`
}

type HTTPConfig struct {
	Address         string        `yaml:"address"`
	RateLimit       float64       `yaml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst       int           `yaml:"rate_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// Default returns the configuration written by `productapi init`
func Default() *Config {
	cfg := &Config{
		DatabaseURL: "sqlite://productapi.db",
	}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv(EnvHTTPAddress); v != "" {
		cfg.HTTP.Address = v
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MigrationTable == "" {
		c.MigrationTable = "_productapi_migrations"
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 5 * time.Second
	}
	if c.Logger.Mode == "" {
		c.Logger.Mode = "development"
	}
	if c.Logger.Filename == "" {
		c.Logger.Filename = "productapi.log"
	}
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if c.HTTP.Address == "" {
		return fmt.Errorf("http.address is required")
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("http.rate_limit must not be negative")
	}
	if c.HTTP.RateBurst < 0 {
		return fmt.Errorf("http.rate_burst must not be negative")
	}
	return nil
}

// Save writes the config as YAML
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultShiftStart = "09:00"
	defaultShiftEnd   = "13:00"
	defaultJobType    = "Coach"
)

// Config represents the application configuration
type Config struct {
	DatabaseURL       string `yaml:"databaseURL,omitempty"`
	Timezone          string `yaml:"timezone" validate:"required"`
	DirectoryFile     string `yaml:"directoryFile,omitempty"`
	DefaultShiftStart string `yaml:"defaultShiftStart" validate:"required,shiftclock"`
	DefaultShiftEnd   string `yaml:"defaultShiftEnd" validate:"required,shiftclock"`
	DefaultJobType    string `yaml:"defaultJobType" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("shiftclock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
}

// Load loads and validates the configuration from scheduler_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks the timezone is resolvable
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.DefaultShiftStart == "" {
		cfg.DefaultShiftStart = defaultShiftStart
	}
	if cfg.DefaultShiftEnd == "" {
		cfg.DefaultShiftEnd = defaultShiftEnd
	}
	if cfg.DefaultJobType == "" {
		cfg.DefaultJobType = defaultJobType
	}
}

// Default returns a configuration with the built-in defaults applied,
// suitable for tests and the CLI's local mode
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// findConfigFile searches for scheduler_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "scheduler_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

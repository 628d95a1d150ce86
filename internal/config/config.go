package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure. The worker limits
// are advisory declarations for the hosting environment; the pipeline
// itself has no internal timers or resource accounting.
type Config struct {
	MaxExecutionTime uint64              `yaml:"max_execution_time" mapstructure:"max_execution_time"` // seconds
	MemoryLimit      uint64              `yaml:"memory_limit"       mapstructure:"memory_limit"`       // bytes
	SandboxEnabled   bool                `yaml:"sandbox_enabled"    mapstructure:"sandbox_enabled"`
	LogLevel         string              `yaml:"log_level"          mapstructure:"log_level"`
	Server           ServerConfig        `yaml:"server"             mapstructure:"server"`
	Vulnerability    VulnerabilityConfig `yaml:"vulnerability"      mapstructure:"vulnerability"`
}

// ServerConfig represents HTTP listener settings
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" mapstructure:"listen_addr"`
}

// VulnerabilityConfig selects and bounds the vulnerability oracle
type VulnerabilityConfig struct {
	CheckTimeoutSeconds int              `yaml:"check_timeout_seconds" mapstructure:"check_timeout_seconds"`
	Advisories          []AdvisoryConfig `yaml:"advisories"            mapstructure:"advisories"`
}

// AdvisoryConfig is one static known-vulnerable version range
type AdvisoryConfig struct {
	Package    string `yaml:"package"    mapstructure:"package"`
	Constraint string `yaml:"constraint" mapstructure:"constraint"`
	Summary    string `yaml:"summary"    mapstructure:"summary"`
}

// LoadConfig loads configuration from an optional file and environment
// variables. An empty path means defaults plus environment only; every
// option has a usable default.
func LoadConfig(configPath string) (*Config, error) {
	// Create a new Viper instance to avoid data races in concurrent tests
	v := viper.New()

	// Set default values
	setDefaultValues(v)

	// Enable reading from environment variables
	v.AutomaticEnv()

	// Set environment variable key replacer for nested config
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	_ = v.BindEnv("max_execution_time", "MAX_EXECUTION_TIME")
	_ = v.BindEnv("memory_limit", "MEMORY_LIMIT")
	_ = v.BindEnv("sandbox_enabled", "SANDBOX_ENABLED")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("server.listen_addr", "SERVER_LISTEN_ADDR")
	_ = v.BindEnv("vulnerability.check_timeout_seconds", "VULNERABILITY_CHECK_TIMEOUT_SECONDS")

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaultValues sets default configuration values
func setDefaultValues(v *viper.Viper) {
	// Worker limit defaults
	v.SetDefault("max_execution_time", 300)
	v.SetDefault("memory_limit", uint64(1024*1024*1024)) // 1 GiB
	v.SetDefault("sandbox_enabled", true)
	v.SetDefault("log_level", "info")

	// Server defaults
	v.SetDefault("server.listen_addr", ":8080")

	// Vulnerability oracle defaults
	v.SetDefault("vulnerability.check_timeout_seconds", 10)
	v.SetDefault("vulnerability.advisories", []AdvisoryConfig{})
}

// validateConfig validates the configuration
func validateConfig(config Config) error {
	if config.MaxExecutionTime == 0 {
		return fmt.Errorf("max_execution_time must be positive")
	}

	if config.MemoryLimit == 0 {
		return fmt.Errorf("memory_limit must be positive")
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", config.LogLevel)
	}

	if config.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}

	if config.Vulnerability.CheckTimeoutSeconds < 0 {
		return fmt.Errorf("vulnerability.check_timeout_seconds must not be negative")
	}

	// Validate advisories
	for i, advisory := range config.Vulnerability.Advisories {
		if advisory.Package == "" {
			return fmt.Errorf("vulnerability.advisories[%d] must have a package name", i)
		}
		if advisory.Constraint == "" {
			return fmt.Errorf("vulnerability.advisories[%d] must have a constraint", i)
		}
	}

	return nil
}

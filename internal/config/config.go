package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/chainset/internal/hashset"
)

// SupportedVersion is the only configuration schema version Load accepts.
const SupportedVersion = "1.0"

// Config is the chainset configuration file.
type Config struct {
	Version  string         `yaml:"version"`
	Set      SetConfig      `yaml:"set"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Reporter ReporterConfig `yaml:"reporter"`
	Bench    BenchConfig    `yaml:"bench"`
}

// SetConfig sizes every set the CLI and server create.
type SetConfig struct {
	BucketCount           int     `yaml:"bucket_count"`             // Initial bucket array length
	LoadFactorLimit       float64 `yaml:"load_factor_limit"`        // Growth threshold (elements per bucket)
	PreserveOrderOnRehash bool    `yaml:"preserve_order_on_rehash"` // Keep chain order across rebuilds
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// MetricsConfig represents Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ReporterConfig controls the periodic registry summary in serve mode.
type ReporterConfig struct {
	Interval string `yaml:"interval"` // Go duration; "0s" disables
}

// BenchConfig holds load generator defaults.
type BenchConfig struct {
	Elements    int     `yaml:"elements"`
	RemoveRatio float64 `yaml:"remove_ratio"`
	Seed        uint64  `yaml:"seed"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: SupportedVersion}
	applyDefaults(cfg)
	return cfg
}

// Load loads a configuration file, expanding ${VAR} references against the
// environment (after .env/.env.local are merged in).
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just note it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, normalizes, defaults and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported configuration version: %s (expected %s)", config.Version, SupportedVersion)
	}

	// Normalization pass (case-fold enumerations, trim strings)
	for _, w := range normalizeConfig(&config) {
		fmt.Fprintf(os.Stderr, "config normalization: %s\n", w)
	}
	// Apply defaults (after normalization so canonical values drive defaults)
	applyDefaults(&config)

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Version: SupportedVersion,
		Set: SetConfig{
			BucketCount:     hashset.DefaultBucketCount,
			LoadFactorLimit: hashset.DefaultLoadFactorLimit,
		},
		Logging:  LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Server:   ServerConfig{Addr: ":8080", ReadTimeout: "15s", WriteTimeout: "15s", ShutdownTimeout: "10s"},
		Metrics:  MetricsConfig{Enabled: true, Path: "/metrics"},
		Reporter: ReporterConfig{Interval: "1m"},
		Bench:    BenchConfig{Elements: 100000, RemoveRatio: 0.25, Seed: 1},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	// #nosec G306 -- example config holds no secrets
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetOptions converts the set section into hashset options.
func (c *Config) SetOptions() []hashset.Option {
	return []hashset.Option{
		hashset.WithBucketCount(c.Set.BucketCount),
		hashset.WithLoadFactorLimit(c.Set.LoadFactorLimit),
		hashset.WithOrderPreservingRehash(c.Set.PreserveOrderOnRehash),
	}
}

// ReadTimeoutDuration returns the parsed server read timeout.
func (s ServerConfig) ReadTimeoutDuration() time.Duration { return parsedDuration(s.ReadTimeout) }

// WriteTimeoutDuration returns the parsed server write timeout.
func (s ServerConfig) WriteTimeoutDuration() time.Duration { return parsedDuration(s.WriteTimeout) }

// ShutdownTimeoutDuration returns the parsed graceful shutdown timeout.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parsedDuration(s.ShutdownTimeout)
}

// IntervalDuration returns the parsed reporter interval (zero when disabled).
func (r ReporterConfig) IntervalDuration() time.Duration { return parsedDuration(r.Interval) }

// parsedDuration parses a duration validation already accepted; bad input yields zero.
func parsedDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSet(); err != nil {
		return err
	}
	if err := cv.validateServer(); err != nil {
		return err
	}
	if err := cv.validateBench(); err != nil {
		return err
	}
	return nil
}

func (cv *configurationValidator) validateSet() error {
	s := cv.config.Set
	if s.BucketCount <= 0 {
		return fmt.Errorf("set.bucket_count must be positive, got %d", s.BucketCount)
	}
	if math.IsNaN(s.LoadFactorLimit) || math.IsInf(s.LoadFactorLimit, 0) || s.LoadFactorLimit <= 0 {
		return fmt.Errorf("set.load_factor_limit must be a positive number, got %v", s.LoadFactorLimit)
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	srv := cv.config.Server
	for field, raw := range map[string]string{
		"server.read_timeout":     srv.ReadTimeout,
		"server.write_timeout":    srv.WriteTimeout,
		"server.shutdown_timeout": srv.ShutdownTimeout,
	} {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q: %w", field, raw, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", field, raw)
		}
	}

	interval, err := time.ParseDuration(cv.config.Reporter.Interval)
	if err != nil {
		return fmt.Errorf("reporter.interval: invalid duration %q: %w", cv.config.Reporter.Interval, err)
	}
	if interval < 0 {
		return errors.New("reporter.interval cannot be negative")
	}

	if !strings.HasPrefix(cv.config.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", cv.config.Metrics.Path)
	}
	return nil
}

func (cv *configurationValidator) validateBench() error {
	b := cv.config.Bench
	if b.Elements < 0 {
		return fmt.Errorf("bench.elements cannot be negative, got %d", b.Elements)
	}
	if b.RemoveRatio < 0 || b.RemoveRatio > 1 {
		return fmt.Errorf("bench.remove_ratio must be within [0,1], got %v", b.RemoveRatio)
	}
	return nil
}

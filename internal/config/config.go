// Package config provides Viper-based configuration loading for the
// worldnorm converter.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// PathsConfig holds the document paths for a conversion run.
type PathsConfig struct {
	// Input is the path of the hand-authored world document.
	Input string `mapstructure:"input"`
	// Output is the path the canonical document is written to.
	Output string `mapstructure:"output"`
	// Report is an optional path for the YAML conversion report.
	// Empty means no report is written.
	Report string `mapstructure:"report"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Paths.Input == "" {
		errs = append(errs, "paths.input must not be empty")
	}
	if c.Paths.Output == "" {
		errs = append(errs, "paths.output must not be empty")
	}
	if c.Paths.Input != "" && c.Paths.Input == c.Paths.Output {
		errs = append(errs, "paths.output must differ from paths.input")
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path loads defaults
// and environment overrides only.
//
// Precondition: path, when non-empty, must point to a readable config file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with WORLDNORM_ prefix
	v.SetEnvPrefix("WORLDNORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("paths.input", "house.xml")
	v.SetDefault("paths.output", "house.out.xml")
	v.SetDefault("paths.report", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Package config handles the intcode.toml runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/eigerco/intcode/pkg/log"
)

// Config represents an intcode.toml file.
type Config struct {
	Log    Log    `toml:"log"`
	Store  Store  `toml:"store"`
	Runner Runner `toml:"runner"`
}

// Log configures the root logger.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Store configures the program library. An empty path keeps it in memory.
type Store struct {
	Path string `toml:"path"`
}

// Runner configures batch execution.
type Runner struct {
	Parallelism int  `toml:"parallelism"`
	Cache       bool `toml:"cache"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:    Log{Level: "info", Format: "console"},
		Runner: Runner{Parallelism: 4, Cache: true},
	}
}

// Load parses the TOML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks values that toml decoding alone cannot.
func (c *Config) Validate() error {
	var errs []error
	if _, err := log.ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := log.ParseLoggerType(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	if c.Runner.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("runner.parallelism must be positive, got %d", c.Runner.Parallelism))
	}
	return errors.Join(errs...)
}

// LogOptions converts the log section for log.Init.
func (c *Config) LogOptions() (log.Options, error) {
	level, err := log.ParseLogLevel(c.Log.Level)
	if err != nil {
		return log.Options{}, err
	}
	typ, err := log.ParseLoggerType(c.Log.Format)
	if err != nil {
		return log.Options{}, err
	}
	return log.Options{LogLevel: level, Type: typ}, nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// LoadFromFile reads a Config from a YAML file, layered over Default().
// Fields absent from the file keep their defaults. Returns wrapped
// sentinel errors for the common failure cases.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return cfg, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return cfg, fmt.Errorf("stat config file: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return cfg, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if len(data) == 0 {
		return cfg, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	return Parse(data)
}

// Parse unmarshals YAML config data over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects settings the harness cannot honor.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("host must not be empty")
	}
	if c.SamplesPerSession < 0 {
		return fmt.Errorf("samples_per_session must not be negative: %d", c.SamplesPerSession)
	}
	if c.SamplePeriodMs < 0 {
		return fmt.Errorf("sample_period_ms must not be negative: %d", c.SamplePeriodMs)
	}
	if c.ChunkDelayMs < 0 {
		return fmt.Errorf("chunk_delay_ms must not be negative: %d", c.ChunkDelayMs)
	}
	return nil
}

// Package config loads the optional harness configuration file. All
// settings have defaults that reproduce the canonical mock service
// behavior; the file exists for tuning, not for changing the protocol.
// Service ports in particular are fixed and not configurable.
package config

import (
	"time"

	"github.com/mocapkit/motionmock/pkg/service"
)

// Defaults for the harness tunables.
const (
	DefaultHost           = "localhost"
	DefaultSampleCount    = service.DefaultSampleCount
	DefaultSamplePeriodMs = 10
	DefaultChunkDelayMs   = 1
)

// Config is the harness configuration, populated from YAML and flags.
type Config struct {
	// Host is the bind address for every listener.
	Host string `yaml:"host"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`

	// Seed makes jitter fragmentation reproducible. Zero seeds from the
	// clock.
	Seed int64 `yaml:"seed"`

	// SamplesPerSession is the number of sample frames streamed before a
	// production session closes.
	SamplesPerSession int `yaml:"samples_per_session"`

	// SamplePeriodMs is the approximate per-sample pacing budget.
	SamplePeriodMs int `yaml:"sample_period_ms"`

	// ChunkDelayMs is the pause between jittered chunk writes.
	ChunkDelayMs int `yaml:"chunk_delay_ms"`
}

// Default returns the configuration matching the real mock services:
// localhost, 100 samples at ~100 Hz, 1ms chunk pacing, clock-seeded.
func Default() Config {
	return Config{
		Host:              DefaultHost,
		LogLevel:          "info",
		LogFormat:         "text",
		SamplesPerSession: DefaultSampleCount,
		SamplePeriodMs:    DefaultSamplePeriodMs,
		ChunkDelayMs:      DefaultChunkDelayMs,
	}
}

// SamplePeriod returns the pacing budget as a duration.
func (c Config) SamplePeriod() time.Duration {
	return time.Duration(c.SamplePeriodMs) * time.Millisecond
}

// ChunkDelay returns the chunk pause as a duration.
func (c Config) ChunkDelay() time.Duration {
	return time.Duration(c.ChunkDelayMs) * time.Millisecond
}

package config

import (
	"fmt"
	"time"
)

const (
	// CurrentVersion is the only supported file version
	CurrentVersion = 1

	// SourceADB lists services with "adb mdns services"
	SourceADB = "adb"
	// SourceZeroconf browses mDNS directly
	SourceZeroconf = "zeroconf"
)

// Config holds the user-configurable settings.
type Config struct {
	Version          int    `yaml:"version"`
	ADBPath          string `yaml:"adb_path"`           // adb binary, name or path
	TimeoutMS        int    `yaml:"timeout_ms"`         // Discovery deadline
	PollIntervalMS   int    `yaml:"poll_interval_ms"`   // Pause between empty discovery listings
	CommandTimeoutMS int    `yaml:"command_timeout_ms"` // Per adb invocation limit, 0 = none
	Source           string `yaml:"source"`             // "adb" or "zeroconf"
	OpenScreen       bool   `yaml:"openscreen"`         // Set ADB_MDNS_OPENSCREEN=1
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:          CurrentVersion,
		ADBPath:          "adb",
		TimeoutMS:        15000,
		PollIntervalMS:   1000,
		CommandTimeoutMS: 0,
		Source:           SourceADB,
		OpenScreen:       true,
	}
}

// Timeout returns the discovery deadline.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// PollInterval returns the pause between discovery listings.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// CommandTimeout returns the per-invocation adb limit; zero means none.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutMS) * time.Millisecond
}

// Validate checks the configuration for values the program cannot use.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.ADBPath == "" {
		return fmt.Errorf("adb_path must not be empty")
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMS)
	}
	if c.PollIntervalMS <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMS)
	}
	if c.CommandTimeoutMS < 0 {
		return fmt.Errorf("command_timeout_ms must not be negative, got %d", c.CommandTimeoutMS)
	}
	switch c.Source {
	case SourceADB, SourceZeroconf:
	default:
		return fmt.Errorf("unknown source %q (valid: %s, %s)", c.Source, SourceADB, SourceZeroconf)
	}
	return nil
}

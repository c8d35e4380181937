// Package config loads runtime configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Operating modes. The mode is read once at startup; switching requires a
// restart.
const (
	ModeLive       = "live"
	ModeSimulation = "simulation"
)

// Transport modes for the MCP server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	Mode      string          `koanf:"mode"`
	Backend   BackendConfig   `koanf:"backend"`
	DB        DBConfig        `koanf:"db"`
	Log       LogConfig       `koanf:"log"`
	Transport TransportConfig `koanf:"transport"`
	Server    ServerConfig    `koanf:"server"`
	Watcher   WatcherConfig   `koanf:"watcher"`
}

type BackendConfig struct {
	BaseURL        string `koanf:"base_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type TransportConfig struct {
	Mode string `koanf:"mode"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

type WatcherConfig struct {
	PollIntervalSeconds  int `koanf:"poll_interval_seconds"`
	SimulateDelaySeconds int `koanf:"simulate_delay_seconds"`
}

// Simulation reports whether the canned backend should be used.
func (c *Config) Simulation() bool {
	return c.Mode == ModeSimulation
}

// BackendTimeout returns the configured backend timeout as a duration.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// PollInterval returns the watcher poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watcher.PollIntervalSeconds) * time.Second
}

// SimulateDelay returns the simulated completion delay as a duration.
func (c *Config) SimulateDelay() time.Duration {
	return time.Duration(c.Watcher.SimulateDelaySeconds) * time.Second
}

// Load reads the optional config file at path (empty means skip), then
// applies VALIDATOR_ environment overrides. Double underscores in env names
// separate nesting levels, e.g. VALIDATOR_BACKEND__BASE_URL.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("VALIDATOR_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "VALIDATOR_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := Config{
		Mode: ModeLive,
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		DB: DBConfig{
			Path: "validator.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: TransportStdio,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8321,
		},
		Watcher: WatcherConfig{
			PollIntervalSeconds:  5,
			SimulateDelaySeconds: 3,
		},
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeLive, ModeSimulation:
	default:
		return fmt.Errorf("unknown mode %q (expected %s or %s)", c.Mode, ModeLive, ModeSimulation)
	}

	switch c.Transport.Mode {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unknown transport mode %q (expected %s or %s)", c.Transport.Mode, TransportStdio, TransportHTTP)
	}

	if c.Mode == ModeLive && c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required in live mode")
	}

	return nil
}

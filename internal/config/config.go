// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Node      NodeConfig      `yaml:"node"`
	Log       LogConfig       `yaml:"log"`
	Settings  SettingsConfig  `yaml:"settings"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Watchdog  WatchdogConfig  `yaml:"watchdog"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Sim       SimConfig       `yaml:"sim"`
}

// ---- NODE ----

type NodeConfig struct {
	Hostname string `yaml:"hostname"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// ---- SETTINGS (non-volatile identity storage) ----

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type SettingsConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"` // sqlite file
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// ---- INDICATOR ----

type IndicatorConfig struct {
	FastHz         int `yaml:"fast_hz"`
	InactiveMs     int `yaml:"inactive_ms"`
	UnenumeratedMs int `yaml:"unenumerated_ms"`
}

// ---- WATCHDOG ----

type WatchdogConfig struct {
	TimeoutMs int `yaml:"timeout_ms"`
}

func (w WatchdogConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutMs) * time.Millisecond
}

// ---- STATUS MIRROR (optional, opt-in) ----

const (
	TransportModbus = "modbus"
	TransportIngest = "ingest"
)

type MirrorConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Transport  string `yaml:"transport"`
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	BaseSlot   uint16 `yaml:"base_slot"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	IntervalMs int    `yaml:"interval_ms"`
}

func (m MirrorConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

func (m MirrorConfig) Interval() time.Duration {
	return time.Duration(m.IntervalMs) * time.Millisecond
}

// ---- METRICS ----

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the endpoint
}

// ---- SIMULATED TRAFFIC ----

type SimConfig struct {
	Disabled    bool `yaml:"disabled"`
	ActivityMs  int  `yaml:"activity_ms"`
	EnumerateMs int  `yaml:"enumerate_ms"`
}

// Load reads a YAML config file. Unknown keys are rejected.
// The result is neither validated nor normalized.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML config bytes. An empty document yields a zero Config.
func Parse(b []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// helper to build a config with the mirror switched on
func mirrored(endpoint string, slot uint16) *Config {
	return &Config{
		Mirror: MirrorConfig{
			Enabled:  true,
			Endpoint: endpoint,
			UnitID:   1,
			BaseSlot: slot,
		},
	}
}

// ---- validate ----

func TestValidate_ZeroConfigIsValid(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NilConfig(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestValidate_HostnameMustBeASCII(t *testing.T) {
	cfg := &Config{Node: NodeConfig{Hostname: "nœud"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected non-ASCII hostname to be rejected")
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := &Config{Settings: SettingsConfig{Backend: "eeprom"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown backend to be rejected")
	}
}

func TestValidate_RedisNeedsAddr(t *testing.T) {
	cfg := &Config{Settings: SettingsConfig{Backend: BackendRedis}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected redis backend without addr to be rejected")
	}

	cfg.Settings.Redis.Addr = "127.0.0.1:6379"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	for _, lvl := range []string{"", "debug", "INFO", "warn", "error"} {
		if err := Validate(&Config{Log: LogConfig{Level: lvl}}); err != nil {
			t.Fatalf("level %q: unexpected error: %v", lvl, err)
		}
	}
	if err := Validate(&Config{Log: LogConfig{Level: "chatty"}}); err == nil {
		t.Fatalf("expected unknown level to be rejected")
	}
}

func TestValidate_IndicatorRanges(t *testing.T) {
	if err := Validate(&Config{Indicator: IndicatorConfig{FastHz: 500}}); err == nil {
		t.Fatalf("expected fast_hz above the tick rate to be rejected")
	}
	if err := Validate(&Config{Indicator: IndicatorConfig{InactiveMs: -1}}); err == nil {
		t.Fatalf("expected negative inactive_ms to be rejected")
	}
}

func TestValidate_MirrorNeedsEndpoint(t *testing.T) {
	if err := Validate(mirrored("", 0)); err == nil {
		t.Fatalf("expected enabled mirror without endpoint to be rejected")
	}
	if err := Validate(mirrored("127.0.0.1:502", 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MirrorSlotOverflow(t *testing.T) {
	if err := Validate(mirrored("ep", maxBaseSlot)); err != nil {
		t.Fatalf("last slot must fit: %v", err)
	}
	err := Validate(mirrored("ep", maxBaseSlot+1))
	if err == nil || !strings.Contains(err.Error(), "base_slot") {
		t.Fatalf("expected base_slot overflow error, got %v", err)
	}
}

func TestValidate_MirrorTransport(t *testing.T) {
	cfg := mirrored("ep", 0)
	cfg.Mirror.Transport = "mqtt"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown transport to be rejected")
	}
}

func TestValidate_DisabledMirrorNotChecked(t *testing.T) {
	cfg := &Config{Mirror: MirrorConfig{Transport: "mqtt"}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("disabled mirror must not be validated: %v", err)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Fatalf("Validate mutated config: %+v", *cfg)
	}
}

// ---- normalize ----

func TestNormalize_FillsDefaults(t *testing.T) {
	cfg := &Config{}
	Normalize(cfg)

	if cfg.Node.Hostname != DefaultHostname {
		t.Fatalf("hostname: got=%q", cfg.Node.Hostname)
	}
	if cfg.Settings.Backend != BackendSQLite || cfg.Settings.Path != DefaultSettingsPath {
		t.Fatalf("settings: got=%+v", cfg.Settings)
	}
	if cfg.Indicator.FastHz != 30 || cfg.Indicator.InactiveMs != 125 || cfg.Indicator.UnenumeratedMs != 333 {
		t.Fatalf("indicator: got=%+v", cfg.Indicator)
	}
	if cfg.Mirror.IntervalMs != 0 {
		t.Fatalf("disabled mirror must stay untouched: %+v", cfg.Mirror)
	}
	if cfg.Sim.ActivityMs != DefaultActivityMs {
		t.Fatalf("sim: got=%+v", cfg.Sim)
	}
}

func TestNormalize_TruncatesHostname(t *testing.T) {
	cfg := &Config{Node: NodeConfig{Hostname: "a-very-long-adapter-name"}}
	Normalize(cfg)

	if cfg.Node.Hostname != "a-very-long-adap" {
		t.Fatalf("hostname not truncated to 16: %q", cfg.Node.Hostname)
	}
}

func TestNormalize_MirrorAndRedisDefaults(t *testing.T) {
	cfg := mirrored("ep", 2)
	cfg.Settings = SettingsConfig{Backend: BackendRedis, Redis: RedisConfig{Addr: "r:6379"}}
	Normalize(cfg)

	if cfg.Mirror.Transport != TransportModbus {
		t.Fatalf("transport: got=%q", cfg.Mirror.Transport)
	}
	if cfg.Mirror.Interval().Milliseconds() != DefaultMirrorInterval {
		t.Fatalf("interval: got=%v", cfg.Mirror.Interval())
	}
	if cfg.Settings.Redis.Prefix != DefaultRedisPrefix {
		t.Fatalf("redis prefix: got=%q", cfg.Settings.Redis.Prefix)
	}
	if cfg.Settings.Path != "" {
		t.Fatalf("sqlite path must not be set for redis: %q", cfg.Settings.Path)
	}
}

func TestNormalize_SimDisabledKeepsZero(t *testing.T) {
	cfg := &Config{Sim: SimConfig{Disabled: true}}
	Normalize(cfg)
	if cfg.Sim.ActivityMs != 0 || cfg.Sim.EnumerateMs != 0 {
		t.Fatalf("disabled sim got defaults: %+v", cfg.Sim)
	}
}

// ---- load ----

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jackdaw.yaml")
	doc := `
node:
  hostname: bench-07
settings:
  backend: redis
  redis:
    addr: 127.0.0.1:6379
    db: 2
mirror:
  enabled: true
  transport: ingest
  endpoint: 10.0.0.5:9000
  unit_id: 4
  base_slot: 3
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Node.Hostname != "bench-07" {
		t.Fatalf("hostname: got=%q", cfg.Node.Hostname)
	}
	if cfg.Settings.Redis.DB != 2 {
		t.Fatalf("redis db: got=%d", cfg.Settings.Redis.DB)
	}
	if !cfg.Mirror.Enabled || cfg.Mirror.UnitID != 4 || cfg.Mirror.BaseSlot != 3 {
		t.Fatalf("mirror: got=%+v", cfg.Mirror)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("node:\n  hostnme: x\n")); err == nil {
		t.Fatalf("expected misspelled key to be rejected")
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", *cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

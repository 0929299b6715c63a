// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tamzrod/jackdaw/internal/status"
)

// maxBaseSlot keeps the whole mirror block inside the 16-bit register space.
const maxBaseSlot = (math.MaxUint16+1)/status.SlotsPerNode - 1

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values mean "use the default" and are accepted.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// NODE
	// ------------------------------------------------------------

	for i := 0; i < len(cfg.Node.Hostname); i++ {
		if cfg.Node.Hostname[i] > 0x7F {
			return errors.New("node.hostname must contain ASCII characters only")
		}
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", cfg.Log.Level)
	}

	// ------------------------------------------------------------
	// SETTINGS BACKEND
	// ------------------------------------------------------------

	switch cfg.Settings.Backend {
	case "", BackendMemory, BackendSQLite:
	case BackendRedis:
		if cfg.Settings.Redis.Addr == "" {
			return errors.New("settings.redis.addr is required for the redis backend")
		}
		if cfg.Settings.Redis.DB < 0 {
			return fmt.Errorf("settings.redis.db %d must not be negative", cfg.Settings.Redis.DB)
		}
	default:
		return fmt.Errorf("settings.backend %q: want memory, sqlite or redis", cfg.Settings.Backend)
	}

	// ------------------------------------------------------------
	// INDICATOR TIMING
	// ------------------------------------------------------------

	if cfg.Indicator.FastHz < 0 || cfg.Indicator.FastHz > 125 {
		return fmt.Errorf("indicator.fast_hz %d out of range 1..125", cfg.Indicator.FastHz)
	}
	if err := nonNegative("indicator.inactive_ms", cfg.Indicator.InactiveMs); err != nil {
		return err
	}
	if err := nonNegative("indicator.unenumerated_ms", cfg.Indicator.UnenumeratedMs); err != nil {
		return err
	}
	if err := nonNegative("watchdog.timeout_ms", cfg.Watchdog.TimeoutMs); err != nil {
		return err
	}

	// ------------------------------------------------------------
	// STATUS MIRROR (OPT-IN)
	// ------------------------------------------------------------

	if m := cfg.Mirror; m.Enabled {
		switch m.Transport {
		case "", TransportModbus, TransportIngest:
		default:
			return fmt.Errorf("mirror.transport %q: want modbus or ingest", m.Transport)
		}
		if m.Endpoint == "" {
			return errors.New("mirror.endpoint is required when the mirror is enabled")
		}
		if m.BaseSlot > maxBaseSlot {
			return fmt.Errorf("mirror.base_slot %d: block would run past register 65535 (max %d)", m.BaseSlot, maxBaseSlot)
		}
		if err := nonNegative("mirror.timeout_ms", m.TimeoutMs); err != nil {
			return err
		}
		if err := nonNegative("mirror.interval_ms", m.IntervalMs); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// SIMULATION
	// ------------------------------------------------------------

	if err := nonNegative("sim.activity_ms", cfg.Sim.ActivityMs); err != nil {
		return err
	}
	return nonNegative("sim.enumerate_ms", cfg.Sim.EnumerateMs)
}

func nonNegative(field string, v int) error {
	if v < 0 {
		return fmt.Errorf("%s %d must not be negative", field, v)
	}
	return nil
}

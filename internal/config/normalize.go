// internal/config/normalize.go
package config

import "github.com/tamzrod/jackdaw/internal/status"

// Defaults applied by Normalize.
const (
	DefaultHostname       = "jackdaw"
	DefaultLogLevel       = "info"
	DefaultSettingsPath   = "jackdaw-settings.db"
	DefaultRedisPrefix    = "jackdaw:settings:"
	DefaultFastHz         = 30
	DefaultInactiveMs     = 125
	DefaultUnenumeratedMs = 333
	DefaultWatchdogMs     = 4000
	DefaultMirrorTimeout  = 1000
	DefaultMirrorInterval = 1000
	DefaultActivityMs     = 250
	DefaultEnumerateMs    = 2000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// Hostname: ASCII already validated, truncate to what the mirror can hold.
	if cfg.Node.Hostname == "" {
		cfg.Node.Hostname = DefaultHostname
	}
	if len(cfg.Node.Hostname) > status.HostnameMaxChars {
		cfg.Node.Hostname = cfg.Node.Hostname[:status.HostnameMaxChars]
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	if cfg.Settings.Backend == "" {
		cfg.Settings.Backend = BackendSQLite
	}
	if cfg.Settings.Backend == BackendSQLite && cfg.Settings.Path == "" {
		cfg.Settings.Path = DefaultSettingsPath
	}
	if cfg.Settings.Backend == BackendRedis && cfg.Settings.Redis.Prefix == "" {
		cfg.Settings.Redis.Prefix = DefaultRedisPrefix
	}

	setDefault(&cfg.Indicator.FastHz, DefaultFastHz)
	setDefault(&cfg.Indicator.InactiveMs, DefaultInactiveMs)
	setDefault(&cfg.Indicator.UnenumeratedMs, DefaultUnenumeratedMs)
	setDefault(&cfg.Watchdog.TimeoutMs, DefaultWatchdogMs)

	// Mirror defaults only matter when the mirror is on.
	if cfg.Mirror.Enabled {
		if cfg.Mirror.Transport == "" {
			cfg.Mirror.Transport = TransportModbus
		}
		setDefault(&cfg.Mirror.TimeoutMs, DefaultMirrorTimeout)
		setDefault(&cfg.Mirror.IntervalMs, DefaultMirrorInterval)
	}

	if !cfg.Sim.Disabled {
		setDefault(&cfg.Sim.ActivityMs, DefaultActivityMs)
		setDefault(&cfg.Sim.EnumerateMs, DefaultEnumerateMs)
	}
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

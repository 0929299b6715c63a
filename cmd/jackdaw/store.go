package main

import (
	"fmt"

	"github.com/tamzrod/jackdaw/internal/config"
	"github.com/tamzrod/jackdaw/internal/settings"
	settingsredis "github.com/tamzrod/jackdaw/internal/settings/redis"
	settingssqlite "github.com/tamzrod/jackdaw/internal/settings/sqlite"
)

// openStore builds the configured settings backend.
func openStore(c config.SettingsConfig) (settings.Store, error) {
	switch c.Backend {
	case config.BackendMemory:
		return settings.NewMemoryStore(), nil
	case config.BackendSQLite, "":
		st, err := settingssqlite.Open(c.Path)
		if err != nil {
			return nil, fmt.Errorf("open settings: %w", err)
		}
		return st, nil
	case config.BackendRedis:
		var opts []settingsredis.Option
		if c.Redis.Prefix != "" {
			opts = append(opts, settingsredis.WithPrefix(c.Redis.Prefix))
		}
		return settingsredis.New(c.Redis.Addr, c.Redis.Password, c.Redis.DB, opts...), nil
	default:
		return nil, fmt.Errorf("open settings: unknown backend %q", c.Backend)
	}
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tamzrod/jackdaw/internal/config"
	"github.com/tamzrod/jackdaw/internal/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "jackdaw",
		Short:         "Wireless USB adapter node",
		Long:          `jackdaw brings up an 802.15.4 adapter node: identity, radio, protocol stack and status lights.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file (defaults apply when empty)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	cmd.AddCommand(runCmd(opts))
	cmd.AddCommand(identityCmd(opts))
	return cmd
}

// load reads, validates and normalizes the config, then builds the logger.
func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	cfg := &config.Config{}
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, nil, err
		}
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level), nil
}

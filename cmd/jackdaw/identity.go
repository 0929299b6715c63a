package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/jackdaw/internal/identity"
	"github.com/tamzrod/jackdaw/internal/settings"
)

func identityCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Inspect or reset the persisted node identity",
	}
	cmd.AddCommand(identityShowCmd(opts), identityResetCmd(opts))
	return cmd
}

func identityShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted identity without provisioning one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			store, err := openStore(cfg.Settings)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := identity.Load(cmd.Context(), store)
			if errors.Is(err, settings.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "no identity provisioned")
				return nil
			}
			if err != nil {
				return fmt.Errorf("load identity: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "eui64     %s\n", id.EUI)
			fmt.Fprintf(out, "channel   %d\n", id.Channel)
			fmt.Fprintf(out, "pan_id    0x%04X\n", id.PanID)
			fmt.Fprintf(out, "pan_addr  0x%04X\n", id.PanAddr)
			fmt.Fprintf(out, "tx_power  %d\n", id.TxPower)
			return nil
		},
	}
}

func identityResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the identity so the next boot provisions a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			store, err := openStore(cfg.Settings)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := identity.Clear(cmd.Context(), store); err != nil {
				return fmt.Errorf("reset identity: %w", err)
			}
			log.Info("identity cleared", "backend", cfg.Settings.Backend)
			fmt.Fprintln(cmd.OutOrStdout(), "identity cleared")
			return nil
		},
	}
}

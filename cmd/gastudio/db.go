package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDBCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect or roll back the session database",
	}
	cmd.AddCommand(newDBStatusCmd(opts))
	cmd.AddCommand(newDBRollbackCmd(opts))
	return cmd
}

func newDBStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, pending, err := db.GetMigrationStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("reading migration status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", db.Path())
			now := time.Now()
			for _, m := range applied {
				fmt.Fprintf(out, "  applied  %s  (%s)\n", m.Version, humanize.RelTime(m.AppliedAt, now, "ago", "from now"))
			}
			for _, m := range pending {
				fmt.Fprintf(out, "  pending  %s  %s\n", m.Version, m.Name)
			}
			fmt.Fprintf(out, "%d applied, %d pending\n", len(applied), len(pending))
			return nil
		},
	}
}

func newDBRollbackCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.MigrateDown(cmd.Context()); err != nil {
				return fmt.Errorf("rolling back: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rolled back the latest migration")
			return nil
		},
	}
}

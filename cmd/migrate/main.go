package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alimgiray/inbox/internal/migrations"
	"github.com/alimgiray/inbox/pkg/config"
	"github.com/alimgiray/inbox/pkg/database"
	"github.com/alimgiray/inbox/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunner() (*migrations.Runner, error) {
	cfg, _ := config.Load()
	if err := logger.Configure(cfg.Log); err != nil {
		return nil, err
	}
	return migrations.NewRunner(database.NewStore(cfg.Database)), nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the email database schema",
		Long: `Applies or reverts the schema migrations of the email database.

Examples:
  migrate up       # create the emails table and seed sample messages
  migrate down     # drop the emails table (destructive)
  migrate status   # list migrations and whether they are applied`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}
			applied, err := runner.Up(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", len(applied))
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert all migrations, dropping their tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}
			if err := runner.Down(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations reverted")
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}
			statuses, err := runner.Status(context.Background())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied " + s.AppliedAt
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-50s %s\n", s.Name, s.Description, state)
			}
			return nil
		},
	})

	return rootCmd
}

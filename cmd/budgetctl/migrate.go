package main

import (
	"fmt"

	"github.com/budgetbook/budgetbook-backend/internal/config"
	"github.com/budgetbook/budgetbook-backend/internal/repository/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(postgres.MigrateUp), string(postgres.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			databaseURL, err := config.LoadDatabaseURL()
			if err != nil {
				return err
			}
			direction := postgres.Direction(args[0])
			if err := postgres.RunMigrations(databaseURL, direction); err != nil {
				return fmt.Errorf("migrate %s: %w", direction, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s complete\n", direction)
			return nil
		},
	}
}

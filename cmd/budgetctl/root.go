package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "budgetctl",
		Short:        "Operator tooling for the budgetbook backend",
		Long:         `budgetctl runs schema migrations and inspects ledgers directly against the database named by DATABASE_URL.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newMigrateCmd(), newCalendarCmd())
	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica el esquema SQL embebido",
	Long:  `Aplica en orden los archivos de migración que aún no figuran en schema_migrations.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
			applied, err := postgres.Migrate(ctx, pool, log)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "esquema al día")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "aplicada:", name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
)

var failOnDrift bool

var auditCmd = &cobra.Command{
	Use:   "audit-stock",
	Short: "Compara el stock de cada producto con la suma de su libro",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
			uc := inventory.NewAuditUseCase(
				postgres.NewProductRepository(pool),
				postgres.NewStockMovementRepository(pool),
				log,
			)
			drifts, err := uc.AuditStock(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(drifts) == 0 {
				fmt.Fprintln(out, "sin diferencias")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRODUCTO\tSTOCK\tLIBRO\tDIFERENCIA")
			for _, d := range drifts {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%+d\n", d.ProductID, d.ProductName, d.Stock, d.LedgerStock, d.Difference)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if failOnDrift {
				return fmt.Errorf("%d productos con diferencias", len(drifts))
			}
			return nil
		})
	},
}

func init() {
	auditCmd.Flags().BoolVar(&failOnDrift, "fail", false, "termina con error si hay diferencias")
	rootCmd.AddCommand(auditCmd)
}

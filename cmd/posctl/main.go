// posctl herramientas de administración: migraciones, datos iniciales y auditoría de stock.
//
// Uso:
//
//	posctl migrate
//	posctl seed --admin-password <clave> [--demo]
//	posctl audit-stock
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

var (
	cfg     *config.Config
	log     *logger.Logger
	timeout time.Duration
)

// rootCmd comando base 'posctl'.
var rootCmd = &cobra.Command{
	Use:           "posctl",
	Short:         "Administración del backend de entradas del POS",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("posctl")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "tiempo máximo del comando")
}

// withPool abre el pool de PostgreSQL, ejecuta fn y lo cierra.
func withPool(cmd *cobra.Command, fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, pool)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

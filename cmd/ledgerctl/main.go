// ledgerctl herramienta operativa: migraciones de esquema y reconciliación
// de proyecciones desde la línea de comandos.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/migration"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operación del ledger de stock",
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones de esquema pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return migration.Migrate(cfg.DB.ConnectionString(), "file://"+dir, log)
		},
	}
	migrateCmd.Flags().String("dir", "migrations", "directorio con los archivos de migración")

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recalcula proyecciones de stock contra el ledger",
		Long: `Pliega el ledger de cada ítem y corrige la proyección si hay deriva.
Con --item reconcilia solo ese ítem; sin flag barre todo el catálogo.
El barrido es cancelable con SIGINT entre ítems, nunca a mitad de uno.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			itemRepo := postgres.NewStockItemRepository(pool)
			noteRepo := postgres.NewReconciliationNoteRepository(pool)
			txRunner := postgres.NewTxRunner(pool)
			uc := ledger.NewReconcileUseCase(txRunner, itemRepo, noteRepo, log)

			itemID, _ := cmd.Flags().GetString("item")
			if itemID != "" {
				result, err := uc.Reconcile(ctx, itemID)
				if err != nil {
					return err
				}
				if result.Drift {
					log.Warn().
						Str("item_id", result.ItemID).
						Int64("stored", result.StoredStock).
						Int64("computed", result.CurrentStock).
						Msg("deriva corregida")
				} else {
					log.Info().Str("item_id", result.ItemID).Msg("proyección consistente")
				}
				return nil
			}

			sweep, err := uc.ReconcileAll(ctx)
			if sweep != nil {
				log.Info().
					Int("checked", sweep.Checked).
					Int("corrected", sweep.Corrected).
					Msg("barrido de reconciliación")
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	reconcileCmd.Flags().String("item", "", "ID del ítem a reconciliar (vacío = todos)")

	rootCmd.AddCommand(migrateCmd, reconcileCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

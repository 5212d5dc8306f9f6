package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/application/reporting"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/radiator-inventory/internal/interfaces/cli"
	"github.com/jhoicas/radiator-inventory/pkg/config"
	"github.com/jhoicas/radiator-inventory/pkg/logger"
)

func main() {
	if err := cli.NewRootCmd(openPostgres).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openPostgres arma los servicios del CLI sobre PostgreSQL con la misma configuración que la API.
func openPostgres(ctx context.Context) (*cli.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	migrator, err := postgres.NewMigrator(pool, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	radiatorRepo := postgres.NewRadiatorRepository(pool)
	ledger := inventory.NewLedgerUseCase(
		postgres.NewTxRunner(pool),
		radiatorRepo,
		warehouseRepo,
		postgres.NewStockLevelRepository(pool),
		postgres.NewStockHistoryRepository(pool),
		nil,
		log,
	)
	sheets := spreadsheet.NewStockSheet()

	return &cli.Services{
		Ledger:   ledger,
		Reports:  reporting.NewReportUseCase(postgres.NewReportRepository(pool), warehouseRepo, sheets),
		Sheets:   sheets,
		Migrator: migrator,
		Close: func() {
			_ = migrator.Close()
			pool.Close()
		},
	}, nil
}

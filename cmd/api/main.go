package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/radiator-inventory/internal/application/auth"
	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/application/reporting"
	"github.com/jhoicas/radiator-inventory/internal/application/sales"
	"github.com/jhoicas/radiator-inventory/internal/application/usecase"
	"github.com/jhoicas/radiator-inventory/internal/domain/sale"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/radiator-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/radiator-inventory/internal/interfaces/http"
	"github.com/jhoicas/radiator-inventory/pkg/config"
	"github.com/jhoicas/radiator-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(pool, log)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migraciones")
		}
		if err := migrator.Up(ctx); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = migrator.Close()
	}

	taxRate, err := sale.ParseTaxRate(cfg.Sales.TaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("tax_rate", cfg.Sales.TaxRate).Msg("tasa de impuesto inválida")
	}

	collector := metrics.New("radiator_inventory")

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	radiatorRepo := postgres.NewRadiatorRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	historyRepo := postgres.NewStockHistoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := inventory.NewLedgerUseCase(txRunner, radiatorRepo, warehouseRepo, stockRepo, historyRepo, collector, log)
	createSaleUC := sales.NewCreateSaleUseCase(
		txRunner, ledgerUC, customerRepo, radiatorRepo, warehouseRepo,
		sales.Options{TaxRate: &taxRate}, collector, log,
	)
	saleAdminUC := sales.NewSaleAdminUseCase(txRunner, ledgerUC, saleRepo, customerRepo, radiatorRepo, warehouseRepo, collector, log)

	// PDF: recibo de venta
	pdfGenerator, err := infrapdf.NewReceiptGenerator(cfg.App.Name, cfg.Sales.Currency, cfg.Sales.Locale)
	if err != nil {
		log.Fatal().Err(err).Msg("generador de recibos")
	}
	receiptUC := sales.NewReceiptUseCase(saleRepo, customerRepo, radiatorRepo, warehouseRepo, pdfGenerator)

	sheets := spreadsheet.NewStockSheet()
	reportUC := reporting.NewReportUseCase(reportRepo, warehouseRepo, sheets)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, collector))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Radiator Inventory API",
	}))

	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(userRepo),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo),
		RadiatorUC:  usecase.NewRadiatorUseCase(radiatorRepo, stockRepo),
		CustomerUC:  usecase.NewCustomerUseCase(customerRepo),
		Ledger:      ledgerUC,
		CreateSale:  createSaleUC,
		SaleAdmin:   saleAdminUC,
		Receipts:    receiptUC,
		Reports:     reportUC,
		Sheets:      sheets,
		DB:          pool,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

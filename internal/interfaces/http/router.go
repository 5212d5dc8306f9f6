package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/radiator-inventory/internal/application/auth"
	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/application/reporting"
	"github.com/jhoicas/radiator-inventory/internal/application/sales"
	"github.com/jhoicas/radiator-inventory/internal/application/usecase"
	"github.com/jhoicas/radiator-inventory/internal/domain/access"
)

// Pinger verifica una dependencia externa (ej: *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	WarehouseUC *usecase.WarehouseUseCase
	RadiatorUC  *usecase.RadiatorUseCase
	CustomerUC  *usecase.CustomerUseCase
	Ledger      *inventory.LedgerUseCase
	CreateSale  *sales.CreateSaleUseCase
	SaleAdmin   *sales.SaleAdminUseCase
	Receipts    *sales.ReceiptUseCase
	Reports     *reporting.ReportUseCase
	Sheets      BulkSheetParser
	DB          Pinger // nil = /health no consulta la base
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.DB))

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", RequireCapability(access.CapManageUsers), authHandler.Register)
	protected.Get("/users", RequireCapability(access.CapManageUsers), authHandler.ListUsers)

	view := RequireCapability(access.CapViewCatalog)
	manage := RequireCapability(access.CapManageCatalog)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", view, warehouseHandler.List)
	warehouses.Get("/code/:code", view, warehouseHandler.GetByCode)
	warehouses.Get("/:id", view, warehouseHandler.GetByID)
	warehouses.Post("/", manage, warehouseHandler.Create)
	warehouses.Put("/:id", manage, warehouseHandler.Update)
	warehouses.Delete("/:id", manage, warehouseHandler.Delete)

	// Radiators
	radiators := protected.Group("/radiators")
	radiatorHandler := NewRadiatorHandler(deps.RadiatorUC)
	radiators.Get("/", view, radiatorHandler.List)
	radiators.Get("/:id", view, radiatorHandler.GetByID)
	radiators.Post("/", manage, radiatorHandler.Create)
	radiators.Put("/:id", manage, radiatorHandler.Update)
	radiators.Delete("/:id", manage, radiatorHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", view, customerHandler.List)
	customers.Get("/:id", view, customerHandler.GetByID)
	customers.Post("/", RequireCapability(access.CapCreateSale), customerHandler.Create)
	customers.Put("/:id", RequireCapability(access.CapCreateSale), customerHandler.Update)
	customers.Delete("/:id", RequireCapability(access.CapManageSales), customerHandler.Delete)

	// Stock ledger
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Sheets)
	adjust := RequireCapability(access.CapAdjustStock)
	stock.Post("/bulk", adjust, stockHandler.Bulk)
	stock.Post("/import", adjust, stockHandler.Import)
	stock.Put("/:radiator_id", adjust, stockHandler.Adjust)
	stock.Get("/:radiator_id", view, stockHandler.Get)
	stock.Get("/:radiator_id/total", view, stockHandler.Total)
	stock.Get("/:radiator_id/history", view, stockHandler.History)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleAdmin, deps.Receipts)
	salesGroup.Post("/", RequireCapability(access.CapCreateSale), saleHandler.Create)
	salesGroup.Get("/", RequireCapability(access.CapCreateSale), saleHandler.List)
	salesGroup.Get("/:id", RequireCapability(access.CapCreateSale), saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", RequireCapability(access.CapCreateSale), saleHandler.Receipt)
	salesGroup.Patch("/:id/status", RequireCapability(access.CapManageSales), saleHandler.UpdateStatus)
	salesGroup.Delete("/:id", RequireCapability(access.CapManageSales), saleHandler.Delete)

	// Reports
	reports := protected.Group("/reports", RequireCapability(access.CapViewReports))
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/out-of-stock", reportHandler.OutOfStock)
	reports.Get("/warehouses", reportHandler.Warehouses)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/movements", reportHandler.Movements)
	reports.Get("/stock/export", reportHandler.ExportStock)
}

// healthHandler GET /health: 200 si la base responde, 503 si no.
func healthHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DB_UNAVAILABLE", Message: err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

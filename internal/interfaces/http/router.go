package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medstock/medstock-pro/internal/application/analytics"
	"github.com/medstock/medstock-pro/internal/application/auth"
	"github.com/medstock/medstock-pro/internal/application/export"
	"github.com/medstock/medstock-pro/internal/application/inventory"
	"github.com/medstock/medstock-pro/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	BrandUC     *usecase.BrandUseCase
	Ledger      *inventory.StockLedgerService
	DashboardUC *analytics.DashboardUseCase
	Exporter    *export.ExportService
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movimentações de estoque (protegido)
	movementHandler := NewMovementHandler(deps.Ledger)
	products.Post("/:id/movements", movementHandler.Register)
	products.Get("/:id/movements", movementHandler.History)

	// Brands (protegido)
	brands := protected.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC)
	brands.Get("/", brandHandler.List)
	brands.Post("/", brandHandler.Add)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Exporter)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/movements", dashboardHandler.MovementSeries)
	dashboard.Get("/movements/export", dashboardHandler.ExportMovements)
	dashboard.Get("/stock-value-by-brand", dashboardHandler.StockValueByBrand)
}

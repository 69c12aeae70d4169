package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	"github.com/medstock/medstock-pro/internal/application/analytics"
	"github.com/medstock/medstock-pro/internal/application/auth"
	"github.com/medstock/medstock-pro/internal/application/export"
	"github.com/medstock/medstock-pro/internal/application/inventory"
	"github.com/medstock/medstock-pro/internal/application/usecase"
	"github.com/medstock/medstock-pro/internal/infrastructure/brandstore"
	infrapdf "github.com/medstock/medstock-pro/internal/infrastructure/pdf"
	"github.com/medstock/medstock-pro/internal/infrastructure/postgres"
	infraxlsx "github.com/medstock/medstock-pro/internal/infrastructure/xlsx"
	httpRouter "github.com/medstock/medstock-pro/internal/interfaces/http"
	"github.com/medstock/medstock-pro/pkg/config"
	"github.com/medstock/medstock-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	aggRepo := postgres.NewAggregationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	brandRegistry := brandstore.NewFileRegistry(afero.NewOsFs(), cfg.Brands.Path)

	ledger := inventory.NewStockLedgerService(productRepo, movementRepo, log.Zerolog())
	productUC := usecase.NewProductUseCase(productRepo, brandRegistry)
	brandUC := usecase.NewBrandUseCase(brandRegistry)
	dashboardUC := analytics.NewDashboardUseCase(aggRepo, productRepo, movementRepo)
	exporter := export.NewExportService(
		infrapdf.NewMarotoReportGenerator(),
		infraxlsx.NewExcelizeReportGenerator(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MedStock Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		BrandUC:     brandUC,
		Ledger:      ledger,
		DashboardUC: dashboardUC,
		Exporter:    exporter,
		AuthUC:      authUC,
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

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

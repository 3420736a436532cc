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

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/entrada"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
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
		Str("stock_policy", cfg.Inventory.StockPolicy).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	entradaRepo := postgres.NewEntradaRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	entradaUC := entrada.NewUseCase(txRunner, entradaRepo, cfg.Inventory.StockPolicy, log)
	// PDF: comprobante de la entrada con los datos de la empresa
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.MediaRoot)
	entradaPDFUC := entrada.NewPDFUseCase(entradaRepo, companyRepo, pdfGenerator)
	auditUC := inventory.NewAuditUseCase(productRepo, movementRepo, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "POS API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo),
		CategoryUC:  usecase.NewCategoryUseCase(categoryRepo),
		ProductUC:   usecase.NewProductUseCase(productRepo, categoryRepo),
		ClientUC:    usecase.NewClientUseCase(clientRepo),
		LookupUC:    usecase.NewLookupUseCase(productRepo, clientRepo),
		DashboardUC: usecase.NewDashboardUseCase(entradaRepo, productRepo, cfg.Inventory.LowStockThreshold),
		EntradaUC:   entradaUC,
		EntradaPDF:  entradaPDFUC,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
	})

	sched := scheduler.NewScheduler(cfg.Inventory.AuditCron, auditUC, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

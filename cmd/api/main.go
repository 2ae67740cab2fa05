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
	"github.com/kazuo-app/kazuo-back/internal/application/auth"
	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/application/inventory"
	"github.com/kazuo-app/kazuo-back/internal/application/usecase"
	"github.com/kazuo-app/kazuo-back/internal/infrastructure/mail"
	"github.com/kazuo-app/kazuo-back/internal/infrastructure/postgres"
	"github.com/kazuo-app/kazuo-back/internal/infrastructure/push"
	httpRouter "github.com/kazuo-app/kazuo-back/internal/interfaces/http"
	"github.com/kazuo-app/kazuo-back/internal/notification"
	"github.com/kazuo-app/kazuo-back/pkg/config"
	"github.com/kazuo-app/kazuo-back/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Canal push por empresa + correo de notificación, ambos post-commit.
	hub := push.NewHub(log)
	var mailer notification.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSender(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP no configurado, notificaciones por correo deshabilitadas")
	}
	dispatcher := notification.NewDispatcher(hub, mailer, companyRepo, log, cfg.SMTP.FrontendURL)

	productGuard := guard.New(productRepo)
	stockEntryUC := inventory.NewStockEntryUseCase(txRunner)
	transferUC := inventory.NewTransferStockUseCase(
		txRunner, productGuard, storeRepo, dispatcher, log,
		inventory.Config{
			Timeout:                  time.Duration(cfg.Transfer.TimeoutSeconds) * time.Second,
			MaxRetries:               cfg.Transfer.MaxRetries,
			RequireSameCompanyStores: cfg.Transfer.RequireSameCompanyStores,
		},
	)
	historyUC := inventory.NewMovementHistoryUseCase(productGuard, movementRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo)
	productUC := usecase.NewProductUseCase(productRepo, storeRepo, productGuard, stockEntryUC, dispatcher)
	statsUC := usecase.NewStatsUseCase(statsRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kazuo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC: companyUC,
		StoreUC:   storeUC,
		ProductUC: productUC,
		StatsUC:   statsUC,
		Transfer:  transferUC,
		History:   historyUC,
		AuthUC:    authUC,
		WSHandler: hub.Handle(),
		JWTSecret: cfg.JWT.Secret,
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

	// Drenar efectos pendientes antes de salir: conexiones push y correos en vuelo.
	hub.Shutdown()
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}

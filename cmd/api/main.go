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
	"github.com/jhoicas/Etiquetas-api/internal/application/auth"
	"github.com/jhoicas/Etiquetas-api/internal/application/labels"
	"github.com/jhoicas/Etiquetas-api/internal/application/reprint"
	infrapdf "github.com/jhoicas/Etiquetas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Etiquetas-api/internal/infrastructure/postgres"
	infraprinter "github.com/jhoicas/Etiquetas-api/internal/infrastructure/printer"
	httpRouter "github.com/jhoicas/Etiquetas-api/internal/interfaces/http"
	"github.com/jhoicas/Etiquetas-api/pkg/config"
	"github.com/jhoicas/Etiquetas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	labelRepo := postgres.NewLabelRepository(pool)
	printerRepo := postgres.NewPrinterRepository(pool)
	reprintRepo := postgres.NewReprintRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	drafts := labels.NewDraftStore()
	labelingUC := labels.NewLabelingUseCase(orderRepo, labelRepo, printerRepo, txRunner, drafts)

	dispatcher := infraprinter.NewTCPDispatcher(cfg.Printer.DispatchTimeout)
	reprintUC := reprint.NewReprintUseCase(
		reprintRepo, labelRepo, printerRepo,
		dispatcher, cfg.Printer.DispatchRetries, log,
	)

	sheetGen := infrapdf.NewLabelSheetGenerator()

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

	// Swagger UI en local: http://localhost:<port>/docs. El JSON lo genera
	// swag fuera del build; si no está presente la ruta no se monta.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Etiquetas API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		LabelingUC:  labelingUC,
		ReprintUC:   reprintUC,
		PrinterRepo: printerRepo,
		SheetGen:    sheetGen,
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

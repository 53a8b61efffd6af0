package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/invorya/pos-ledger/internal/application/inventory"
	"github.com/invorya/pos-ledger/internal/infrastructure/sqlite"
	httpRouter "github.com/invorya/pos-ledger/internal/interfaces/http"
	"github.com/invorya/pos-ledger/pkg/config"
	"github.com/invorya/pos-ledger/pkg/logger"
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
		Str("db", cfg.DB.Path).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("apertura de SQLite")
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migración de esquema")
	}

	// Repositorios de lectura fuera de transacción; las escrituras
	// de documentos pasan siempre por el TxRunner.
	ex := sqlite.NewExecutor(db, cfg.DB.RetryAttempts, cfg.DB.RetryBackoff)
	itemRepo := sqlite.NewItemRepository(ex)
	movementRepo := sqlite.NewMovementRepository(ex)
	txRunner := sqlite.NewTxRunner(db, cfg.DB.RetryAttempts, cfg.DB.RetryBackoff)

	itemUC := inventory.NewItemUseCase(txRunner, itemRepo, log)
	saleUC := inventory.NewSaleUseCase(txRunner, itemRepo, log)
	purchaseUC := inventory.NewPurchaseUseCase(txRunner, itemRepo, log)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner, itemRepo, log)
	cancelUC := inventory.NewCancelUseCase(txRunner, log)
	historyUC := inventory.NewHistoryUseCase(itemRepo, movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		SaleUC:       saleUC,
		PurchaseUC:   purchaseUC,
		AdjustmentUC: adjustmentUC,
		CancelUC:     cancelUC,
		HistoryUC:    historyUC,
		JWTSecret:    cfg.JWT.Secret,
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

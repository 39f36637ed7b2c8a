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

	"github.com/jhoicas/stock-ledger-api/internal/application/alerts"
	"github.com/jhoicas/stock-ledger-api/internal/application/items"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/application/reporting"
	infrakafka "github.com/jhoicas/stock-ledger-api/internal/infrastructure/kafka"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
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

	itemRepo := postgres.NewStockItemRepository(pool)
	entryRepo := postgres.NewStockEntryRepository(pool)
	alertRepo := postgres.NewAlertConfigRepository(pool)
	noteRepo := postgres.NewReconciliationNoteRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	reportingRepo := postgres.NewReportingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador de alertas: Kafka si hay brokers, si no solo log.
	var notifier alerts.Notifier
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		kafkaNotifier := infrakafka.NewNotifier(brokers, cfg.Kafka.Topic)
		defer func() { _ = kafkaNotifier.Close() }()
		notifier = kafkaNotifier
		log.Info().Strs("brokers", brokers).Str("topic", cfg.Kafka.Topic).Msg("alertas vía Kafka")
	} else {
		notifier = alerts.NewLogNotifier(log)
		log.Info().Msg("sin brokers Kafka, alertas solo en log")
	}

	itemsUC := items.NewUseCase(itemRepo)
	appendUC := ledger.NewAppendUseCase(txRunner, postgres.IsSerializationFailure, cfg.Ledger.AppendMaxRetries)
	historyUC := ledger.NewHistoryUseCase(entryRepo, itemRepo)
	reconcileUC := ledger.NewReconcileUseCase(txRunner, itemRepo, noteRepo, log)
	evaluatorUC := alerts.NewEvaluatorUseCase(itemRepo, alertRepo, notifier, log)
	purchaseUC := purchasing.NewUseCase(orderRepo, itemRepo)
	receiveUC := purchasing.NewReceiveUseCase(txRunner, postgres.IsSerializationFailure, cfg.Ledger.AppendMaxRetries, cfg.Ledger.AllowOverReceipt, log)
	dashboardUC := reporting.NewDashboardUseCase(reportingRepo, log)

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
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemsUC:     itemsUC,
		AppendUC:    appendUC,
		HistoryUC:   historyUC,
		ReconcileUC: reconcileUC,
		EvaluatorUC: evaluatorUC,
		PurchaseUC:  purchaseUC,
		ReceiveUC:   receiveUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
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

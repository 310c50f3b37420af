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

	"github.com/semed-merenda/merenda-api/internal/application/auth"
	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	infrapdf "github.com/semed-merenda/merenda-api/internal/infrastructure/pdf"
	"github.com/semed-merenda/merenda-api/internal/infrastructure/postgres"
	httpRouter "github.com/semed-merenda/merenda-api/internal/interfaces/http"
	"github.com/semed-merenda/merenda-api/pkg/config"
	"github.com/semed-merenda/merenda-api/pkg/logger"
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
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	schoolRepo := postgres.NewSchoolRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	receiptRepo := postgres.NewSupplierReceiptRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	responsibleRepo := postgres.NewResponsibleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	deliveryWorkflow := inventory.NewDeliveryWorkflowUseCase(txRunner, schoolRepo)
	receiptWorkflow := inventory.NewReceiptWorkflowUseCase(txRunner, schoolRepo)
	consumptionUC := inventory.NewConsumptionUseCase(txRunner, schoolRepo)
	actorResolver := inventory.NewActorResolver(deliveryRepo, movementRepo, userRepo)

	supplyUC := usecase.NewSupplyUseCase(supplyRepo, balanceRepo)
	schoolUC := usecase.NewSchoolUseCase(schoolRepo)
	stockUC := usecase.NewStockUseCase(balanceRepo, movementRepo, schoolRepo, supplyRepo)
	deliveryUC := usecase.NewDeliveryUseCase(deliveryRepo, schoolRepo, supplyRepo, cfg.Public.BaseURL)
	receiptUC := usecase.NewReceiptUseCase(receiptRepo, supplierRepo, schoolRepo, supplyRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	responsibleUC := usecase.NewResponsibleUseCase(responsibleRepo)

	// PDF: versão imprimível do cardápio semanal
	pdfGenerator := infrapdf.NewMarotoMenuGenerator()
	menuUC := usecase.NewMenuUseCase(menuRepo, schoolRepo, pdfGenerator)

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
		Title:    "Merenda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		SupplyUC:         supplyUC,
		SchoolUC:         schoolUC,
		StockUC:          stockUC,
		DeliveryUC:       deliveryUC,
		ReceiptUC:        receiptUC,
		SupplierUC:       supplierUC,
		MenuUC:           menuUC,
		NotificationUC:   notificationUC,
		ResponsibleUC:    responsibleUC,
		RegisterMovement: registerMovementUC,
		DeliveryWorkflow: deliveryWorkflow,
		ReceiptWorkflow:  receiptWorkflow,
		Consumption:      consumptionUC,
		ActorResolver:    actorResolver,
		SchoolRepo:       schoolRepo,
		DeliveryRepo:     deliveryRepo,
		JWTSecret:        cfg.JWT.Secret,
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
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/auth"
	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	SupplyUC         *usecase.SupplyUseCase
	SchoolUC         *usecase.SchoolUseCase
	StockUC          *usecase.StockUseCase
	DeliveryUC       *usecase.DeliveryUseCase
	ReceiptUC        *usecase.ReceiptUseCase
	SupplierUC       *usecase.SupplierUseCase
	MenuUC           *usecase.MenuUseCase
	NotificationUC   *usecase.NotificationUseCase
	ResponsibleUC    *usecase.ResponsibleUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	DeliveryWorkflow *inventory.DeliveryWorkflowUseCase
	ReceiptWorkflow  *inventory.ReceiptWorkflowUseCase
	Consumption      *inventory.ConsumptionUseCase
	ActorResolver    *inventory.ActorResolver
	SchoolRepo       repository.SchoolRepository
	DeliveryRepo     repository.DeliveryRepository
	JWTSecret        string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; cadastro de usuários restrito a admin)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Supplies (protegido)
	supplies := protected.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	supplies.Post("/", supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Put("/:id", supplyHandler.Update)
	supplies.Delete("/:id", RequireRole(entity.RoleAdmin), supplyHandler.Delete)

	// Schools (protegido)
	schools := protected.Group("/schools")
	schoolHandler := NewSchoolHandler(deps.SchoolUC)
	stockHandler := NewStockHandler(deps.StockUC, deps.RegisterMovement)
	schools.Post("/", schoolHandler.Create)
	schools.Get("/", schoolHandler.List)
	schools.Get("/:id", schoolHandler.GetByID)
	schools.Put("/:id", schoolHandler.Update)
	schools.Delete("/:id", RequireRole(entity.RoleAdmin), schoolHandler.Delete)
	schools.Get("/:id/stock", stockHandler.ListBySchool)
	schools.Put("/:id/stock-limits", stockHandler.SetSchoolMinStock)

	// Stock central e razão de movimentos (protegido)
	stock := protected.Group("/stock")
	stock.Get("/", stockHandler.ListCentral)
	stock.Get("/export", stockHandler.ExportBalancesCSV)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/movements/export", stockHandler.ExportMovementsCSV)

	// Deliveries (protegido)
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.DeliveryWorkflow)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Put("/:id", deliveryHandler.Update)
	deliveries.Delete("/:id", deliveryHandler.Delete)
	deliveries.Post("/:id/send", deliveryHandler.Send)
	deliveries.Post("/:id/conference", deliveryHandler.SubmitConference)
	deliveries.Get("/:id/conference-link", deliveryHandler.ConferenceLink)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Supplier receipts (protegido)
	receipts := protected.Group("/supplier-receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.ReceiptWorkflow)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Put("/:id", receiptHandler.Update)
	receipts.Delete("/:id", receiptHandler.Delete)
	receipts.Post("/:id/start-conference", receiptHandler.StartConference)
	receipts.Post("/:id/conference", receiptHandler.SubmitConference)
	receipts.Post("/:id/cancel", receiptHandler.Cancel)

	// Menus (protegido)
	menus := protected.Group("/menus")
	menuHandler := NewMenuHandler(deps.MenuUC)
	menus.Post("/", menuHandler.Create)
	menus.Get("/", menuHandler.List)
	menus.Get("/:id", menuHandler.GetByID)
	menus.Put("/:id", menuHandler.Update)
	menus.Delete("/:id", menuHandler.Delete)
	menus.Post("/:id/publish", menuHandler.Publish)
	menus.Get("/:id/export", menuHandler.ExportPDF)
	menus.Get("/:id/export-csv", menuHandler.ExportCSV)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Responsibles (protegido)
	responsibles := protected.Group("/responsibles")
	responsibleHandler := NewResponsibleHandler(deps.ResponsibleUC)
	responsibles.Post("/", responsibleHandler.Create)
	responsibles.Get("/", responsibleHandler.List)
	responsibles.Put("/:id", responsibleHandler.Update)
	responsibles.Delete("/:id", responsibleHandler.Delete)

	// Portal público (sem JWT; autenticado pelo par slug+token da escola)
	publicHandler := NewPublicHandler(
		deps.SchoolRepo,
		deps.DeliveryRepo,
		deps.StockUC,
		deps.MenuUC,
		deps.DeliveryWorkflow,
		deps.Consumption,
		deps.ActorResolver,
	)
	app.Get("/public/schools", publicHandler.ListSchools)

	public := app.Group("/public/schools/:slug/:token")
	public.Get("/", publicHandler.GetSchool)
	public.Get("/menus/current", publicHandler.CurrentMenu)
	public.Get("/menus/week", publicHandler.MenuByWeek)
	public.Get("/deliveries/current", publicHandler.CurrentDelivery)
	public.Post("/deliveries/current/conference", publicHandler.SubmitConference)
	public.Get("/stock", publicHandler.SchoolStock)
	public.Post("/consumption", publicHandler.RecordConsumption)
}

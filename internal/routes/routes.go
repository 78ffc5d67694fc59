package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/audit"
	"github.com/oficinaflow/oficina-api/internal/cache"
	"github.com/oficinaflow/oficina-api/internal/config"
	"github.com/oficinaflow/oficina-api/internal/handlers"
	infraRepo "github.com/oficinaflow/oficina-api/internal/infra/repository"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	"github.com/oficinaflow/oficina-api/internal/notification"
	"github.com/oficinaflow/oficina-api/internal/payments"
	"github.com/oficinaflow/oficina-api/internal/storage"
	ucCash "github.com/oficinaflow/oficina-api/internal/usecase/cash"
	ucOrder "github.com/oficinaflow/oficina-api/internal/usecase/order"
	ucRequest "github.com/oficinaflow/oficina-api/internal/usecase/request"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	orderRepo := infraRepo.NewOrderGormRepository(db)
	cashRepo := infraRepo.NewCashGormRepository(db)

	redisClient := cache.NewRedisClient(cfg.RedisAddr)

	notificationStore := notification.NewStore(db, redisClient)
	notifier := notification.NewDispatcher(notificationStore)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	gateway, err := payments.NewGateway(cfg.MercadoPagoToken)
	if err != nil {
		log.Fatalf("mercadopago: %v", err)
	}
	if gateway == nil {
		log.Println("[routes] MERCADOPAGO_ACCESS_TOKEN ausente; pagamentos serão registrados sem confirmação no provedor")
	}

	uploader := storage.NewS3Uploader(
		cfg.S3Bucket,
		cfg.S3Region,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
	)

	// ======================================================
	// 🧠 USE CASES — SERVICE ORDERS
	// ======================================================
	createOrderUC := ucOrder.NewCreateOrder(orderRepo, notifier, auditDispatcher)
	listOrdersUC := ucOrder.NewListOrders(orderRepo)
	getOrderUC := ucOrder.NewGetOrder(orderRepo)
	setStatusUC := ucOrder.NewSetStatus(orderRepo, notifier, auditDispatcher)
	acceptOrderUC := ucOrder.NewAcceptPendingOrder(orderRepo, notifier, auditDispatcher)
	finalizeServicesUC := ucOrder.NewFinalizeServices(orderRepo, notifier, auditDispatcher)
	finalizeOrderUC := ucOrder.NewFinalizeOrder(orderRepo, notifier, auditDispatcher)
	deleteOrderUC := ucOrder.NewDeleteOrder(orderRepo, notifier, auditDispatcher)

	addItemUC := ucOrder.NewAddItem(orderRepo, auditDispatcher)
	removeItemUC := ucOrder.NewRemoveItem(orderRepo, auditDispatcher)

	// ======================================================
	// 🧠 USE CASES — REQUESTS
	// ======================================================
	createRequestUC := ucRequest.NewCreateRequest(orderRepo, notifier, auditDispatcher)
	acceptRequestUC := ucRequest.NewAcceptRequest(orderRepo, notifier, auditDispatcher)
	rejectRequestUC := ucRequest.NewRejectRequest(orderRepo, notifier, auditDispatcher)
	deleteRequestUC := ucRequest.NewDeleteRequest(orderRepo, notifier, auditDispatcher)

	// ======================================================
	// 🧠 USE CASES — CASH
	// ======================================================
	openSessionUC := ucCash.NewOpenSession(cashRepo, notifier, auditDispatcher)
	recordMovementUC := ucCash.NewRecordMovement(cashRepo, auditDispatcher)
	closeSessionUC := ucCash.NewCloseSession(cashRepo, notifier, auditDispatcher)
	recordPaymentUC := ucCash.NewRecordPayment(
		cashRepo,
		orderRepo,
		gateway,
		notifier,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	establishmentHandler := handlers.NewEstablishmentHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)

	orderHandler := handlers.NewOrderHandler(
		createOrderUC,
		listOrdersUC,
		getOrderUC,
		setStatusUC,
		acceptOrderUC,
		finalizeServicesUC,
		finalizeOrderUC,
		deleteOrderUC,
	)

	orderItemHandler := handlers.NewOrderItemHandler(addItemUC, removeItemUC)

	requestHandler := handlers.NewRequestHandler(
		createRequestUC,
		acceptRequestUC,
		rejectRequestUC,
		deleteRequestUC,
	)

	checklistHandler := handlers.NewChecklistHandler(db)

	cashHandler := handlers.NewCashHandler(
		cashRepo,
		openSessionUC,
		recordMovementUC,
		closeSessionUC,
		recordPaymentUC,
	)

	notificationHandler := handlers.NewNotificationHandler(notificationStore)
	attachmentHandler := handlers.NewAttachmentHandler(db, uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Me)
			secured.GET("/me/team", meHandler.Team)

			secured.GET("/me/establishment", establishmentHandler.Get)
			secured.PATCH("/me/establishment", establishmentHandler.Update)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)

			secured.GET("/me/vehicles", vehicleHandler.List)
			secured.POST("/me/vehicles", vehicleHandler.Create)
			secured.PATCH("/me/vehicles/:id", vehicleHandler.Update)

			secured.GET("/me/catalog", catalogHandler.List)
			secured.POST("/me/catalog", catalogHandler.Create)
			secured.PATCH("/me/catalog/:id", catalogHandler.Update)
			secured.DELETE("/me/catalog/:id", catalogHandler.Deactivate)

			// ------------------------------
			// SERVICE ORDERS
			// ------------------------------
			secured.POST("/me/orders", orderHandler.Create)
			secured.GET("/me/orders", orderHandler.List)
			secured.GET("/me/orders/:id", orderHandler.Get)
			secured.PUT("/me/orders/:id/status", orderHandler.SetStatus)
			secured.PATCH("/me/orders/:id/accept", orderHandler.Accept)
			secured.PATCH("/me/orders/:id/finalize-services", orderHandler.FinalizeServices)
			secured.PATCH("/me/orders/:id/finalize", orderHandler.Finalize)
			secured.DELETE("/me/orders/:id", orderHandler.Delete)

			secured.POST("/me/orders/:id/items", orderItemHandler.Add)
			secured.DELETE("/me/orders/:id/items/:lineId", orderItemHandler.Remove)

			secured.POST("/me/orders/:id/requests", requestHandler.Create)
			secured.PUT("/me/orders/:id/requests/:reqId", requestHandler.UpdateStatus)
			secured.DELETE("/me/orders/:id/requests/:reqId", requestHandler.Delete)

			secured.POST("/me/orders/:id/checklist", checklistHandler.Create)
			secured.PATCH("/me/orders/:id/checklist/:itemId", checklistHandler.Update)
			secured.DELETE("/me/orders/:id/checklist/:itemId", checklistHandler.Delete)

			secured.POST("/me/orders/:id/payments", cashHandler.RecordPayment)

			secured.POST("/me/orders/:id/attachments", attachmentHandler.Upload)
			secured.GET("/me/orders/:id/attachments", attachmentHandler.List)

			// ------------------------------
			// CASH SESSIONS
			// ------------------------------
			secured.POST("/me/cash-sessions", cashHandler.Open)
			secured.GET("/me/cash-sessions", cashHandler.List)
			secured.GET("/me/cash-sessions/current", cashHandler.Current)
			secured.GET("/me/cash-sessions/:id", cashHandler.Get)
			secured.POST("/me/cash-sessions/:id/movements", cashHandler.RecordMovement)
			secured.PUT("/me/cash-sessions/:id/close", cashHandler.Close)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/me/notifications", notificationHandler.List)
			secured.GET("/me/notifications/unread-count", notificationHandler.UnreadCount)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}

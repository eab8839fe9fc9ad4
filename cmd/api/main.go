package main

import (
	_ "backend/api/swagger" // swagger docs
	"backend/internal/database"
	"backend/internal/guard"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Nail Spa Management API
// @version         1.0
// @description     Multi-tenant API for spas, branches, appointments, payments and commissions.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	spaRepo := repository.NewSpaRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	clientRepo := repository.NewClientRepository(db)
	manicuristRepo := repository.NewManicuristRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, auditService)
	spaService := service.NewSpaService(spaRepo, auditService)
	branchService := service.NewBranchService(branchRepo, auditService)
	clientService := service.NewClientService(clientRepo)
	manicuristService := service.NewManicuristService(manicuristRepo, branchRepo, auditService)
	catalogService := service.NewCatalogService(catalogRepo, auditService)
	appointmentService := service.NewAppointmentService(
		appointmentRepo, catalogRepo, manicuristRepo, spaRepo,
		paymentRepo, commissionRepo, txManager, auditService, wsHub,
	)
	commissionService := service.NewCommissionService(commissionRepo, manicuristRepo)
	dashboardService := service.NewDashboardService(db)

	accessGuard := guard.New(userRepo, branchRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService, accessGuard)
	spaHandler := handler.NewSpaHandler(spaService, accessGuard)
	branchHandler := handler.NewBranchHandler(branchService, accessGuard)
	clientHandler := handler.NewClientHandler(clientService, accessGuard)
	manicuristHandler := handler.NewManicuristHandler(manicuristService, accessGuard)
	catalogHandler := handler.NewCatalogHandler(catalogService, accessGuard)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, accessGuard)
	commissionHandler := handler.NewCommissionHandler(commissionService, accessGuard)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, accessGuard)
	auditHandler := handler.NewAuditHandler(auditService)
	pageHandler := handler.NewPageHandler(accessGuard)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Page guard protects the server-rendered dashboard routes
	router.Use(middleware.PageGuard())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	root := router.Group("")
	userHandler.RegisterRoutes(root)
	spaHandler.RegisterRoutes(root)
	branchHandler.RegisterRoutes(root)
	clientHandler.RegisterRoutes(root)
	manicuristHandler.RegisterRoutes(root)
	catalogHandler.RegisterRoutes(root)
	appointmentHandler.RegisterRoutes(root)
	commissionHandler.RegisterRoutes(root)
	dashboardHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	pageHandler.RegisterRoutes(root)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

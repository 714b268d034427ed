package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/ataousCode/agro-backend/internal/config"
	"github.com/ataousCode/agro-backend/internal/handlers"
	"github.com/ataousCode/agro-backend/internal/middleware"
	"github.com/ataousCode/agro-backend/internal/pdf"
	"github.com/ataousCode/agro-backend/internal/repositories"
	"github.com/ataousCode/agro-backend/internal/routes"
	"github.com/ataousCode/agro-backend/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ataousCode/agro-backend/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	cultivationRepo := repositories.NewCultivationRepository(db)
	diseaseRepo := repositories.NewDiseaseRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// Telegram is optional: without a token orders simply go unannounced
	var telegramService *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		telegramService, err = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
		if err != nil {
			log.Printf("[app] telegram disabled: %v", err)
			telegramService = nil
		}
	}

	authService := services.NewAuthService(userRepo, emailService, cfg)
	userService := services.NewUserService(userRepo, authService)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, emailService, telegramService)
	cultivationService := services.NewCultivationService(cultivationRepo)
	diseaseService := services.NewDiseaseService(diseaseRepo)

	invoiceGen := pdf.NewInvoiceGenerator(cfg.Files.RootDir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	seedHandler := handlers.NewSeedHandler(productService)
	seedlingHandler := handlers.NewSeedlingHandler(productService)
	machineryHandler := handlers.NewMachineryHandler(productService)
	workerHandler := handlers.NewWorkerHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService, invoiceGen)
	cultivationHandler := handlers.NewCultivationHandler(cultivationService)
	diseaseHandler := handlers.NewDiseaseHandler(diseaseService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protect := middleware.Protect(userService, []byte(cfg.JWT.Secret))
	routes.SetupRoutes(
		router,
		protect,
		authHandler,
		userHandler,
		productHandler,
		seedHandler,
		seedlingHandler,
		machineryHandler,
		workerHandler,
		orderHandler,
		cultivationHandler,
		diseaseHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/rentfolio/tenantportal/internal/config"
	"github.com/rentfolio/tenantportal/internal/database"
	"github.com/rentfolio/tenantportal/internal/handlers"
	"github.com/rentfolio/tenantportal/internal/middleware"
	"github.com/rentfolio/tenantportal/internal/services"
	"github.com/rentfolio/tenantportal/internal/session"
	"github.com/rentfolio/tenantportal/internal/storage"
	"github.com/rentfolio/tenantportal/internal/types"
)

// @title Tenant Portal API
// @version 1.0.0
// @description Property-management portal: sessions, leases, billing, maintenance
// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name __session

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations and baseline seed
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	// Prepare upload storage
	uploads, err := storage.NewUploads(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("Failed to prepare uploads dir: %v", err)
	}

	// Session manager
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionSecure)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("tenantportal")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health endpoint
	app.Get("/healthz", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Sessions: sessions}
	leaseHandler := &handlers.LeaseHandler{DB: db}
	billingHandler := &handlers.BillingHandler{DB: db, Uploads: uploads}
	maintenanceHandler := &handlers.MaintenanceHandler{DB: db}
	notificationHandler := &handlers.NotificationHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db}

	// Public routes
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	// Authenticated tenant routes
	user := app.Group("", middleware.RequireUser(sessions, db))
	user.Get("/lease", leaseHandler.GetOwn)
	user.Get("/billings", billingHandler.ListOwn)
	user.Post("/billings/:id/pay", billingHandler.Pay)
	user.Get("/maintenance", maintenanceHandler.ListOwn)
	user.Post("/maintenance", maintenanceHandler.Create)
	user.Get("/notifications", notificationHandler.ListOwn)

	// Admin routes
	admin := app.Group("/admin", middleware.RequireRole(sessions, db, "admin"))
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/audit-log", adminHandler.AuditLog)
	admin.Put("/leases/:userId", leaseHandler.Upsert)
	admin.Get("/leases/:leaseId/billings", billingHandler.ListForLease)
	admin.Post("/billings", billingHandler.Create)
	admin.Get("/billings/due", billingHandler.ListDue)
	admin.Put("/billings/:id", billingHandler.Edit)
	admin.Delete("/billings/:id", billingHandler.Delete)
	admin.Post("/billings/:id/notification", notificationHandler.Toggle)
	admin.Get("/maintenance", maintenanceHandler.ListAll)
	admin.Put("/maintenance/:id/status", maintenanceHandler.SetStatus)
	admin.Delete("/maintenance/:id", maintenanceHandler.Delete)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	// Check for typed service errors that escaped a handler
	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

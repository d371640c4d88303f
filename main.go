package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sweetshop/internal/config"
	"sweetshop/internal/handlers"
	"sweetshop/internal/models"
	"sweetshop/internal/repositories"
	"sweetshop/internal/services"
	"sweetshop/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Repositories ---
	// With no DATABASE_URL the API runs on in-memory repositories, which
	// is enough for local experiments without a database.
	var sweetRepo repositories.SweetRepository
	var userRepo repositories.UserRepository
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.Sweet{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		sweetRepo = repositories.NewGORMSweetRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory repositories")
		sweetRepo = repositories.NewMockSweetRepository()
		userRepo = repositories.NewMockUserRepository()
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		// Consume the inventory events we publish; for now they are only
		// logged, downstream consumers hook in here.
		if err := mqClient.ConsumeInventoryEvents(func(msg amqp.Delivery) error {
			log.Printf("Inventory event %s: %s", msg.Type, msg.Body)
			return nil
		}); err != nil {
			log.Printf("Failed to start inventory event consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL not set, inventory events disabled")
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg)
	sweetService := services.NewSweetService(sweetRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	sweetHandler := handlers.NewSweetHandler(sweetService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "Welcome to Sweet Shop API"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	sweetHandler.RegisterRoutes(api, authService)

	// --- Start HTTP server with graceful shutdown ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

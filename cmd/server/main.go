package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/ezelectronics/ezelectronics/internal"
	"github.com/ezelectronics/ezelectronics/internal/events"
	"github.com/ezelectronics/ezelectronics/internal/handler"
	"github.com/ezelectronics/ezelectronics/internal/middleware"
	"github.com/ezelectronics/ezelectronics/internal/service"
	"github.com/ezelectronics/ezelectronics/internal/sqlite"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Open the database
	logger.Info("Opening database...", "path", cfg.DatabasePath)
	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database open failed: %w", err)
	}
	defer store.Close()

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(store.DB()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Connect the event publisher, if configured
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.Connect(cfg.NatsURL, logger)
		if err != nil {
			return fmt.Errorf("NATS connection failed: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("Event publisher connected", "url", cfg.NatsURL)
	}

	// Initialize services
	productService := service.NewProductService(store, publisher)
	cartService := service.NewCartService(store, store, publisher)
	userService := service.NewUserService(store)
	reviewService := service.NewReviewService(store, store)

	// Assemble the HTTP surface
	router := handler.NewRouter(handler.Deps{
		Logger:   logger,
		Auth:     middleware.NewAuthenticator(cfg.AuthSecret),
		Metrics:  middleware.NewMetrics("ezelectronics"),
		DB:       store.DB(),
		Carts:    cartService,
		Products: productService,
		Users:    userService,
		Reviews:  reviewService,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "addr", addr, "env", cfg.Env)
	return http.ListenAndServe(addr, router)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

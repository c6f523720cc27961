package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DmitryMisevra/shareit/internal/application"
	"github.com/DmitryMisevra/shareit/internal/config"
	"github.com/DmitryMisevra/shareit/internal/database"
	"github.com/DmitryMisevra/shareit/internal/events"
	"github.com/DmitryMisevra/shareit/internal/handler"
	"github.com/DmitryMisevra/shareit/internal/kafka"
	"github.com/DmitryMisevra/shareit/internal/logger"
	"github.com/DmitryMisevra/shareit/internal/middleware"
	"github.com/DmitryMisevra/shareit/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "shareit-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting shareit-server",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.RequestModel{},
			&repository.ItemModel{},
			&repository.BookingModel{},
			&repository.CommentModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DB.URL(), cfg.MigrationsPath, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer and event publisher
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()
	publisher := events.NewPublisher(kafkaProducer, log)

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	// Initialize application services
	userService := application.NewUserService(userRepo, log)
	itemService := application.NewItemService(itemRepo, commentRepo, userRepo, bookingRepo, log)
	requestService := application.NewRequestService(requestRepo, itemRepo, userRepo, log)
	bookingService := application.NewBookingService(bookingRepo, itemRepo, userRepo, publisher, log)

	// Initialize HTTP handlers
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	requestHandler := handler.NewRequestHandler(requestService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())

	// Register health check route
	healthHandler := handler.NewHealthHandler(db, "shareit-server")
	healthHandler.RegisterRoutes(router)

	// Register routes
	userHandler.RegisterRoutes(&router.RouterGroup)
	itemHandler.RegisterRoutes(&router.RouterGroup)
	requestHandler.RegisterRoutes(&router.RouterGroup)
	bookingHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down shareit-server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("shareit-server stopped")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/inbox/internal/handlers"
	"github.com/alimgiray/inbox/internal/middleware"
	"github.com/alimgiray/inbox/internal/migrations"
	"github.com/alimgiray/inbox/internal/repositories"
	"github.com/alimgiray/inbox/internal/services"
	"github.com/alimgiray/inbox/pkg/config"
	"github.com/alimgiray/inbox/pkg/database"
	"github.com/alimgiray/inbox/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, envFileFound := config.Load()
	if err := logger.Configure(cfg.Log); err != nil {
		logger.Fatalf("Failed to configure logger: %v", err)
	}
	if !envFileFound {
		logger.Info("No .env file found, using environment variables")
	}

	gin.SetMode(cfg.Server.Mode)

	store := database.NewStore(cfg.Database)

	if cfg.Server.AutoMigrate {
		if _, err := migrations.NewRunner(store).Up(context.Background()); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize dependencies
	emailRepo := repositories.NewEmailRepository(store)
	emailService := services.NewEmailService(emailRepo)
	exportService := services.NewExportService(emailService)

	router := newRouter(cfg, emailService, exportService)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server stopped")
}

func newRouter(cfg *config.Config, emailService *services.EmailService, exportService *services.ExportService) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.CORS))

	// Serve attachments when the directory exists
	if info, err := os.Stat(cfg.Attachments.Path); err == nil && info.IsDir() {
		router.Static("/static", cfg.Attachments.Path)
	} else {
		logger.WithField("path", cfg.Attachments.Path).Warn("Attachments directory not found, /static is disabled")
	}

	// Setup routes
	handlers.RegisterRoutes(router, handlers.NewEmailHandler(emailService), handlers.NewExportHandler(exportService))

	return router
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shruti0731/MiniProject2/config"
	"github.com/shruti0731/MiniProject2/handler"
	"github.com/shruti0731/MiniProject2/middleware"
	"github.com/shruti0731/MiniProject2/pkg/logger"
	"github.com/shruti0731/MiniProject2/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully", "backend", cfg.Backend.BaseURL)

	// Initialize services
	ocrClient := service.NewOCRClient(&cfg.Backend)
	store := service.NewSessionStore(&cfg.Store, ocrClient)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := newRouter(cfg, store)

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
		// uploads can be large and submit waits on the backend
		ReadTimeout:  60 * time.Second,
		WriteTimeout: time.Duration(cfg.Backend.TimeoutSeconds+30) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

func newRouter(cfg *config.Config, store *service.SessionStore) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"sessions":  store.Count(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	sessionHandler := handler.NewSessionHandler(store, int64(cfg.Server.MaxUploadMB)<<20)

	api := router.Group("/api")
	api.Use(middleware.NoCache())
	handler.RegisterRoutes(api, sessionHandler,
		middleware.RateLimit(cfg.Limits.SubmitsPerMinute, time.Minute),
	)

	return router
}

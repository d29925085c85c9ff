// Package main is the entry point for the plotcolor server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/soma-tiles/plotcolor/internal/api"
	"github.com/soma-tiles/plotcolor/internal/cache"
	"github.com/soma-tiles/plotcolor/internal/config"
	"github.com/soma-tiles/plotcolor/internal/render"
	"github.com/soma-tiles/plotcolor/internal/service"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config/server.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "plotcolor",
		Level:      hclog.LevelFromString(cfg.Log.Level),
		JSONFormat: cfg.Log.JSON,
		Output:     os.Stderr,
	})
	// Send stray log calls through hclog.
	log.SetOutput(logger.StandardWriter(&hclog.StandardLoggerOptions{InferLevels: true}))
	log.SetFlags(0)

	logger.Info("starting server", "port", cfg.Server.Port, "config", *configPath)

	// Initialize cache manager
	cacheManager, err := cache.NewManager(cache.Config{
		ImageCacheSizeMB: cfg.Cache.ImageSizeMB,
		ImageTTL:         time.Duration(cfg.Cache.ImageTTLMinutes) * time.Minute,
		QueryCacheSize:   cfg.Cache.QueryCacheSize,
	})
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer cacheManager.Close()

	renderer := render.NewRenderer(render.Config{
		ColorbarWidth:  cfg.Render.ColorbarWidth,
		ColorbarHeight: cfg.Render.ColorbarHeight,
		SwatchSize:     cfg.Render.SwatchSize,
	})

	svc := service.NewColormapService(service.ColormapServiceConfig{
		Cache:           cacheManager,
		Renderer:        renderer,
		Logger:          logger,
		DefaultColormap: cfg.Render.DefaultColormap,
		DefaultStages:   cfg.Render.DefaultStages,
		AlphaScale:      cfg.Render.AlphaScale,
	})
	logger.Info("colormaps ready",
		"default", svc.DefaultColormap(),
		"stages", cfg.Render.DefaultStages,
		"palettes", len(svc.ListPalettes()))

	// Set up HTTP router
	router := api.NewRouter(api.RouterConfig{
		Service:     svc,
		CORSOrigins: cfg.Server.CORSOrigins,
		Title:       cfg.Server.Title,
		Logger:      logger,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

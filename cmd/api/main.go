// ABOUTME: Main entry point for the Revoice extraction API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"revoice-app-api/api"
	"revoice-app-api/api/handlers"
	"revoice-app-api/core/extract"
	"revoice-app-api/core/interfaces"
	"revoice-app-api/core/reader"
	"revoice-app-api/core/services"
	"revoice-app-api/core/session"
	"revoice-app-api/core/workers"
	"revoice-app-api/infrastructure/cache/memory"
	"revoice-app-api/infrastructure/cache/redis"
	"revoice-app-api/infrastructure/cache/sqlite"
	stdhttp "revoice-app-api/infrastructure/http/standard"
	logruslogger "revoice-app-api/infrastructure/logger/logrus"
	"revoice-app-api/pkg/config"
	"revoice-app-api/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger(cfg.Logging.Level)
	logger.Info("Starting Revoice extraction API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"log_level":  cfg.Logging.Level,
	})

	flags := featureflags.NewEnvManager("")

	var cache interfaces.Cache
	if flags.IsEnabled(context.Background(), featureflags.CacheEnabled) {
		cache = buildCache(cfg, logger)
	} else {
		logger.Warn("Caching disabled by feature flag", nil)
	}

	httpClient := stdhttp.NewStandardHTTPClient(time.Duration(cfg.Server.HTTPTimeout) * time.Second)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Core services
	dispatcher := extract.NewDispatcher(logger)
	sessions := session.NewManager(deps)
	readerService := reader.NewService(deps)
	enrichmentService := services.NewContentEnrichmentService(deps)

	enrichmentWorker := workers.NewEnrichmentWorker(enrichmentService, workers.WorkerConfig{
		MaxWorkers: cfg.Workers.MaxWorkers,
		QueueSize:  cfg.Workers.QueueSize,
		Logger:     logger,
	})
	if err := enrichmentWorker.Start(); err != nil {
		log.Fatalf("Failed to start enrichment worker: %v", err)
	}

	apiConfig := api.APIConfig{
		Logger:     logger,
		RateLimit:  100, // 100 requests per minute
		RateWindow: time.Minute,
	}
	if !flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = 0
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	extractHandler := handlers.NewExtractHandler(dispatcher, sessions, enrichmentWorker, flags, logger)
	extractHandler.RegisterRoutes(humaAPI)

	eventHandler := handlers.NewEventHandler(sessions)
	eventHandler.RegisterRoutes(humaAPI)

	readerHandler := handlers.NewReaderHandler(readerService, flags)
	readerHandler.RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := enrichmentWorker.Stop(); err != nil {
		logger.Warn("Enrichment worker shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// buildCache selects the cache backend, falling back to memory when the
// configured backend cannot be reached.
func buildCache(cfg *config.Config, logger interfaces.Logger) interfaces.Cache {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache

	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path, logger)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLite.Path,
		})
		return sqliteCache

	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache()
	}
}

func init() {
	fmt.Println(`
    ____                  _
   / __ \___ _   ______  (_)_______
  / /_/ / _ \ | / / __ \/ / ___/ _ \
 / _, _/  __/ |/ / /_/ / / /__/  __/
/_/ |_|\___/|___/\____/_/\___/\___/
	`)
}

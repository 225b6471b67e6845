// ABOUTME: Main entry point for the Readwell API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"readwell-api/api"
	"readwell-api/api/handlers"
	"readwell-api/core/extraction"
	"readwell-api/core/fetch"
	"readwell-api/core/interfaces"
	"readwell-api/core/readable"
	"readwell-api/core/reading"
	"readwell-api/infrastructure/auth/token"
	"readwell-api/infrastructure/cache/memory"
	"readwell-api/infrastructure/cache/redis"
	stdhttp "readwell-api/infrastructure/http/standard"
	logrusadapter "readwell-api/infrastructure/logger/logrus"
	"readwell-api/infrastructure/storage/sqlite"
	"readwell-api/pkg/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logrusadapter.NewLogger(cfg.Server.LogLevel)
	logger.Info("Starting Readwell API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"db_path":    cfg.Storage.DatabasePath,
	})

	// Record store
	store, err := sqlite.NewClient(cfg.Storage.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	// Cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		logger.Info("Using memory cache", nil)
	}

	// Fetch pipeline
	fetchTimeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
	httpClient := stdhttp.NewStandardHTTPClient(fetchTimeout)
	guard := fetch.NewGuard(httpClient, logger, fetchTimeout, cfg.Fetch.MaxResponseBytes)
	extractor := readable.NewExtractor(logger)

	// Services
	extractionService := extraction.NewService(guard, extractor, store.Articles(), logger)
	readingService := reading.NewService(store.Progress(), cache, logger)

	// API
	humaAPI, router := api.NewAPI(api.APIConfig{
		Logger:        logger,
		TokenVerifier: token.NewVerifier(cfg.Auth.Secret),
		RateLimit:     float64(cfg.Server.RateLimit),
		RateBurst:     cfg.Server.RateBurst,
	})

	handlers.NewExtractHandler(extractionService).RegisterRoutes(humaAPI)
	handlers.NewArticlesHandler(store.Articles()).RegisterRoutes(humaAPI)
	handlers.NewReadingHandler(store.Articles(), readingService).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

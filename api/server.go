// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"readwell-api/api/middleware"
	"readwell-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger        interfaces.Logger
	TokenVerifier interfaces.TokenVerifier
	RateLimit     float64 // requests per second per IP
	RateBurst     int
}

// NewAPI creates a new Huma API with middleware configured. Authentication
// runs before the handlers, so every registered operation sees a resolved
// identity in its context.
func NewAPI(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflights never hit auth
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLogging(cfg.Logger))
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		router.Use(middleware.RateLimit(limiter))
	}

	if cfg.TokenVerifier != nil {
		router.Use(middleware.Authentication(cfg.TokenVerifier, cfg.Logger))
	}

	config := huma.DefaultConfig("Readwell API", "1.0.0")
	config.Info.Description = "API for saving web articles, extracting readable content and tracking reading progress"

	api := humachi.New(router, config)

	return api, router
}

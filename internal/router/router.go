package router

import (
	"log/slog"

	"github.com/anonto42/nano-forum/backend/internal/handlers"
	"github.com/anonto42/nano-forum/backend/internal/middleware"
	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/anonto42/nano-forum/backend/pkg/config"
	"github.com/labstack/echo/v4"
)

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, svc *services.Service, cfg *config.Config) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(svc, cfg.JWTSecret, cfg.JWTTTL)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	handlers.NewUserHandler(svc).RegisterProfileRoutes(api)
	handlers.NewPostHandler(svc).RegisterPostRoutes(api)
	handlers.NewCommentHandler(svc).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(svc).RegisterLikeRoutes(api)
	handlers.NewNotificationHandler(svc).RegisterNotificationRoutes(api)

	slog.Debug("All routes configured.", "routes", len(e.Routes()))
}

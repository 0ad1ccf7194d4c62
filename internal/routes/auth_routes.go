package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clubhouse/internal/api/middleware"
	"clubhouse/internal/config"
	"clubhouse/internal/handlers"
	"clubhouse/internal/session"
)

func SetupAuthRoutes(api *echo.Group, db *gorm.DB, cache *session.ProfileCache, cfg *config.Config, auth *middleware.AuthMiddleware) {
	authHandler := handlers.NewAuthHandler(db, cache, cfg)

	authGroup := api.Group("/auth")

	// Public routes (no auth required)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)

	// Protected routes
	authGroup.POST("/logout", authHandler.Logout, auth.Middleware())

	users := api.Group("/users")
	users.GET("/me", authHandler.GetMe, auth.Middleware())
}

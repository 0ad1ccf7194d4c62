package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clubhouse/internal/api/middleware"
	"clubhouse/internal/handlers"
	"clubhouse/internal/session"
)

// SetupAdminRoutes mounts the privileged admin API. Every route
// requires a valid token AND the admin-surface policy check against the
// caller's stored role.
func SetupAdminRoutes(e *echo.Echo, db *gorm.DB, cache *session.ProfileCache, auth *middleware.AuthMiddleware) {
	adminHandler := handlers.NewAdminHandler(db, cache)

	admin := e.Group("/api/admin")
	admin.Use(auth.Middleware())
	admin.Use(middleware.RequireAdminSurface(db))

	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/create", adminHandler.CreateUser)
	admin.POST("/users/:uid/update-password", adminHandler.UpdatePassword)
	admin.POST("/users/:uid/update-role", adminHandler.UpdateRole)
}

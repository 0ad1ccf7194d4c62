package routes

import (
	"github.com/labstack/echo/v4"

	"clubhouse/internal/api/middleware"
	"clubhouse/internal/handlers"
	"clubhouse/internal/policy"
	"clubhouse/internal/services"
	"clubhouse/internal/utils/logger"
)

func SetupUploadRoutes(api *echo.Group, storage *services.S3Service, auth *middleware.AuthMiddleware) {
	log := logger.New("upload_routes")

	uploadHandler := handlers.NewUploadHandler(storage)

	fileGroup := api.Group("/files")
	fileGroup.Use(auth.Middleware())

	fileGroup.POST("/upload", uploadHandler.UploadFile)
	fileGroup.GET("", uploadHandler.ListFiles)
	fileGroup.DELETE("", uploadHandler.DeleteFile)
	// Renames rewrite shared storage metadata, so only admins may do it.
	fileGroup.PUT("/rename", uploadHandler.RenameFile, middleware.RequireAction(policy.ActionViewAdminSurface))

	log.Success("Upload routes initialized")
}

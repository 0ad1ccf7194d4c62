package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"clubhouse/internal/api/validator"
	"clubhouse/internal/config"
	"clubhouse/internal/models"
	"clubhouse/internal/services"
	"clubhouse/internal/session"

	console "clubhouse/internal/utils/logger"
)

type Server struct {
	echo    *echo.Echo
	config  *config.Config
	db      *gorm.DB
	cache   *session.ProfileCache
	storage *services.S3Service
}

var log = console.New("API-Server")

// NewServer @title Clubhouse API
// @version 1.0
// @description Content and membership backend for the club website.
// @host localhost:8080
// @BasePath /api/v1
func NewServer(cfg *config.Config, db *gorm.DB, cache *session.ProfileCache, storage *services.S3Service) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Validator = validator.NewValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(middleware.BodyLimit("10M"))

	e.HTTPErrorHandler = customHTTPErrorHandler

	s := &Server{
		echo:    e,
		config:  cfg,
		db:      db,
		cache:   cache,
		storage: storage,
	}

	if err := models.CreateAdminFromEnv(db); err != nil {
		log.Warn("Warning: Failed to create admin account: %v", err)
	} else {
		log.Success("Admin account checked")
	}

	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health check endpoint
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// customHTTPErrorHandler turns internal failures into the small error
// taxonomy the frontend understands. Raw driver and storage errors are
// logged here and never forwarded to the client.
func customHTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message interface{}
	)

	switch e := err.(type) {
	case *echo.HTTPError:
		code = e.Code
		message = e.Message
	case validator.ValidationErrors:
		code = http.StatusBadRequest
		message = e.Format()
	default:
		switch {
		case errors.Is(err, services.ErrOrderingConflict):
			code = http.StatusConflict
			message = "The list changed while you were reordering it. Reload and try again."
		case errors.Is(err, services.ErrInvalidPartition):
			code = http.StatusBadRequest
			message = "Unknown page section"
		case errors.Is(err, gorm.ErrRecordNotFound):
			code = http.StatusNotFound
			message = "Record not found"
		case errors.Is(err, gorm.ErrInvalidDB):
			code = http.StatusServiceUnavailable
			message = "Service temporarily unavailable"
		default:
			log.Warn("Unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
			message = http.StatusText(code)
		}
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				"error": message,
				"code":  code,
				"time":  time.Now().Format(time.RFC3339),
			})
		}
		if err != nil {
			c.Echo().Logger.Error(err)
		}
	}
}

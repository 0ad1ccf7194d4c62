package api

import (
	"net/http"

	"clubhouse/internal/api/controllers"
	"clubhouse/internal/api/middleware"
	"clubhouse/internal/models"
	"clubhouse/internal/policy"
	"clubhouse/internal/routes"
	"clubhouse/internal/services"

	_ "clubhouse/docs/swagger"

	"github.com/go-advanced-admin/admin"
	admingorm "github.com/go-advanced-admin/orm-gorm"
	adminecho "github.com/go-advanced-admin/web-echo"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Clubhouse API")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Accept json
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := middleware.NewAuthMiddleware(s.db, s.cache, s.config.JWT.Secret)

	s.registerAdminPanel(auth)

	// API v1 group. Reads are public; each controller attaches auth to
	// its own mutating routes.
	api := s.echo.Group("/api/v1")

	eventStore := services.NewOwnedStore[models.Event](s.db, "events")
	newsStore := services.NewOwnedStore[models.News](s.db, "news")
	resourceStore := services.NewOwnedStore[models.ClubResource](s.db, "resources")

	controllers.NewOwnedController(eventStore).Register(api.Group("/events"), auth)
	controllers.NewOwnedController(newsStore).Register(api.Group("/news"), auth)
	controllers.NewOwnedController(resourceStore).Register(api.Group("/resources"), auth)

	blockController := controllers.NewInfoBlockController(services.NewInfoBlockStore(s.db))
	blockController.Register(api.Group("/info-blocks"), auth)

	galleryController := controllers.NewGalleryController(services.NewGalleryStore(s.db))
	galleryController.Register(api.Group("/gallery"), auth)

	routes.SetupAuthRoutes(api, s.db, s.cache, s.config, auth)
	routes.SetupUploadRoutes(api, s.storage, auth)
	routes.SetupAdminRoutes(s.echo, s.db, s.cache, auth)
}

// registerAdminPanel mounts the generated model-browsing panel. Every
// panel request is checked against the caller's stored role, same as
// the privileged API endpoints.
func (s *Server) registerAdminPanel(auth *middleware.AuthMiddleware) {
	gormIntegrator := admingorm.NewIntegrator(s.db)

	panelGroup := s.echo.Group("")
	panelGroup.Use(auth.Middleware(), middleware.RequireAdminSurface(s.db))
	echoIntegrator := adminecho.NewIntegrator(panelGroup)

	permissionChecker := func(
		request admin.PermissionRequest, ctx interface{},
	) (bool, error) {
		ec, ok := ctx.(echo.Context)
		if !ok {
			return false, nil
		}
		d := policy.Decide(policy.ActionViewAdminSurface, middleware.CurrentActor(ec), nil)
		return d.Allowed, nil
	}

	adminPanel, err := admin.NewPanel(
		gormIntegrator, echoIntegrator, permissionChecker, nil,
	)
	if err != nil {
		log.Error("Failed to create admin panel", err)
		return
	}

	_, err = adminPanel.RegisterApp(
		"Clubhouse",
		"Clubhouse Admin Panel",
		nil,
	)
	if err != nil {
		log.Error("Failed to register admin panel app", err)
	}
}

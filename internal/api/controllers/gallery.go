package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhouse/internal/api/middleware"
	"clubhouse/internal/models"
	"clubhouse/internal/ordering"
	"clubhouse/internal/policy"
	"clubhouse/internal/services"
)

// GalleryController serves the flat ordered photo gallery. Like info
// blocks, gallery images are ownerless: admin curates, everyone views.
type GalleryController struct {
	store *services.GalleryStore
}

func NewGalleryController(store *services.GalleryStore) *GalleryController {
	return &GalleryController{store: store}
}

type galleryImageRequest struct {
	Title       string `json:"title"`
	StoragePath string `json:"storagePath" validate:"required"`
}

func (c *GalleryController) List(ctx echo.Context) error {
	images, err := c.store.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, images)
}

func (c *GalleryController) Create(ctx echo.Context) error {
	var req galleryImageRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	image := &models.GalleryImage{Title: req.Title, StoragePath: req.StoragePath}

	actor := middleware.CurrentActor(ctx)
	if d := policy.Decide(policy.ActionUpdate, actor, image); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	if err := c.store.Create(ctx.Request().Context(), image); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, image)
}

func (c *GalleryController) Update(ctx echo.Context) error {
	id := ctx.Param("id")

	prior, err := c.store.Get(ctx.Request().Context(), id)
	if err != nil {
		return notFoundOr(err)
	}

	actor := middleware.CurrentActor(ctx)
	if d := policy.Decide(policy.ActionUpdate, actor, prior); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	var req galleryImageRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}

	image := &models.GalleryImage{Title: req.Title}
	if err := c.store.Update(ctx.Request().Context(), id, image); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, image)
}

func (c *GalleryController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")

	prior, err := c.store.Get(ctx.Request().Context(), id)
	if err != nil {
		return notFoundOr(err)
	}

	actor := middleware.CurrentActor(ctx)
	if d := policy.Decide(policy.ActionDelete, actor, prior); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	if err := c.store.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *GalleryController) Move(ctx echo.Context) error {
	var req moveRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	images, err := c.store.Move(ctx.Request().Context(), req.Index, ordering.Direction(req.Direction))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, images)
}

func (c *GalleryController) Register(g *echo.Group, auth *middleware.AuthMiddleware) {
	g.GET("", c.List)

	g.POST("", c.Create, auth.Middleware())
	g.PUT("/:id", c.Update, auth.Middleware())
	g.DELETE("/:id", c.Delete, auth.Middleware())
	g.POST("/move", c.Move, auth.Middleware(), middleware.RequireAction(policy.ActionReorder))
}

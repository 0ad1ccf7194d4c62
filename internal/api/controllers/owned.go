package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clubhouse/internal/api/middleware"
	"clubhouse/internal/policy"
	"clubhouse/internal/services"
)

// OwnedController serves one owned content collection (events, news,
// resources). Reads are public; every mutation re-evaluates the policy
// against the record fetched from the store, so a crafted direct call
// fails the same way a hidden UI control would have.
type OwnedController[T any, PT interface {
	*T
	services.Ownable
}] struct {
	store *services.OwnedStore[T, PT]
}

func NewOwnedController[T any, PT interface {
	*T
	services.Ownable
}](store *services.OwnedStore[T, PT]) *OwnedController[T, PT] {
	return &OwnedController[T, PT]{store: store}
}

// List returns the collection. With ?mine=true it narrows to the
// caller's own records, which requires a signed-in actor.
func (c *OwnedController[T, PT]) List(ctx echo.Context) error {
	if ctx.QueryParam("mine") == "true" {
		user := middleware.CurrentUser(ctx)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Sign in to list your resources")
		}
		entities, err := c.store.ListMine(ctx.Request().Context(), user.ID)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, entities)
	}

	entities, err := c.store.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entities)
}

func (c *OwnedController[T, PT]) Get(ctx echo.Context) error {
	entity, err := c.store.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return notFoundOr(err)
	}
	return ctx.JSON(http.StatusOK, entity)
}

func (c *OwnedController[T, PT]) GetBySlug(ctx echo.Context) error {
	entity, err := c.store.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return notFoundOr(err)
	}
	return ctx.JSON(http.StatusOK, entity)
}

func (c *OwnedController[T, PT]) Create(ctx echo.Context) error {
	actor := middleware.CurrentActor(ctx)
	if d := policy.Decide(policy.ActionCreate, actor, nil); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	entity := PT(new(T))
	if err := ctx.Bind(entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := ctx.Validate(entity); err != nil {
		return err
	}

	if err := c.store.Create(ctx.Request().Context(), middleware.CurrentUser(ctx), entity); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, entity)
}

func (c *OwnedController[T, PT]) Update(ctx echo.Context) error {
	id := ctx.Param("id")

	// Ownership is decided against the stored record, never the payload.
	prior, err := c.store.Get(ctx.Request().Context(), id)
	if err != nil {
		return notFoundOr(err)
	}

	actor := middleware.CurrentActor(ctx)
	if d := policy.Decide(policy.ActionUpdate, actor, prior.Meta()); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	entity := PT(new(T))
	if err := ctx.Bind(entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := ctx.Validate(entity); err != nil {
		return err
	}

	if err := c.store.Update(ctx.Request().Context(), id, middleware.CurrentUser(ctx), entity); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entity)
}

func (c *OwnedController[T, PT]) Delete(ctx echo.Context) error {
	id := ctx.Param("id")

	prior, err := c.store.Get(ctx.Request().Context(), id)
	if err != nil {
		return notFoundOr(err)
	}

	actor := middleware.CurrentActor(ctx)
	if d := policy.Decide(policy.ActionDelete, actor, prior.Meta()); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	if err := c.store.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Register wires the collection under g. Reads take optional auth so
// ?mine=true works; mutations require it.
func (c *OwnedController[T, PT]) Register(g *echo.Group, auth *middleware.AuthMiddleware) {
	g.GET("", c.List, auth.Optional())
	g.GET("/:id", c.Get)
	g.GET("/slug/:slug", c.GetBySlug)

	g.POST("", c.Create, auth.Middleware())
	g.PUT("/:id", c.Update, auth.Middleware())
	g.DELETE("/:id", c.Delete, auth.Middleware())
}

// notFoundOr maps a missing record to 404 and passes store failures
// through to the error handler.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "entity not found")
	}
	return err
}

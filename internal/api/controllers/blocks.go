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

// InfoBlockController serves the ordered info blocks of the static
// pages. Blocks are ownerless, so the ownership rule reduces every
// mutation to admin-only, and reorder is admin-only outright.
type InfoBlockController struct {
	store *services.InfoBlockStore
}

func NewInfoBlockController(store *services.InfoBlockStore) *InfoBlockController {
	return &InfoBlockController{store: store}
}

type listBlocksRequest struct {
	Page string `query:"page" validate:"required,page_section"`
	Sub  string `query:"sub" validate:"omitempty,oneof=top bottom"`
}

type moveRequest struct {
	Page      string `json:"page" validate:"omitempty,page_section"`
	Sub       string `json:"sub" validate:"omitempty,oneof=top bottom"`
	Index     int    `json:"index" validate:"min=0"`
	Direction string `json:"direction" validate:"required,move_direction"`
}

func (c *InfoBlockController) List(ctx echo.Context) error {
	var req listBlocksRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query: "+err.Error())
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	blocks, err := c.store.ListPartition(ctx.Request().Context(), req.Page, req.Sub)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, blocks)
}

func (c *InfoBlockController) Create(ctx echo.Context) error {
	block := &models.InfoBlock{}
	if err := ctx.Bind(block); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := ctx.Validate(block); err != nil {
		return err
	}

	// Adding a block edits the page itself, which is no one's record:
	// the ownerless rule leaves only admins standing.
	actor := middleware.CurrentActor(ctx)
	if d := policy.Decide(policy.ActionUpdate, actor, block); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	if err := c.store.Create(ctx.Request().Context(), block); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, block)
}

func (c *InfoBlockController) Update(ctx echo.Context) error {
	id := ctx.Param("id")

	prior, err := c.store.Get(ctx.Request().Context(), id)
	if err != nil {
		return notFoundOr(err)
	}

	actor := middleware.CurrentActor(ctx)
	if d := policy.Decide(policy.ActionUpdate, actor, prior); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	block := &models.InfoBlock{}
	if err := ctx.Bind(block); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}

	if err := c.store.Update(ctx.Request().Context(), id, block); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, block)
}

func (c *InfoBlockController) Delete(ctx echo.Context) error {
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

func (c *InfoBlockController) Move(ctx echo.Context) error {
	var req moveRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	blocks, err := c.store.Move(ctx.Request().Context(), req.Page, req.Sub, req.Index, ordering.Direction(req.Direction))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, blocks)
}

func (c *InfoBlockController) Register(g *echo.Group, auth *middleware.AuthMiddleware) {
	g.GET("", c.List)

	g.POST("", c.Create, auth.Middleware())
	g.PUT("/:id", c.Update, auth.Middleware())
	g.DELETE("/:id", c.Delete, auth.Middleware())
	g.POST("/move", c.Move, auth.Middleware(), middleware.RequireAction(policy.ActionReorder))
}

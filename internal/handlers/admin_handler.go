package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubhouse/internal/events"
	"clubhouse/internal/models"
	"clubhouse/internal/policy"
	"clubhouse/internal/session"
	"clubhouse/internal/utils/logger"
)

// AdminHandler is the privileged admin API: the only place the identity
// layer's administrative capability (creating accounts with passwords)
// is invoked. Routes sit behind middleware.RequireAdminSurface, which
// re-evaluates the shared policy against the caller's stored role.
type AdminHandler struct {
	db    *gorm.DB
	cache *session.ProfileCache
	log   *logger.Logger
}

func NewAdminHandler(db *gorm.DB, cache *session.ProfileCache) *AdminHandler {
	return &AdminHandler{db: db, cache: cache, log: logger.New("AdminHandler")}
}

// validationFailed wraps a validator error in the privileged API's
// {success, message} envelope instead of the generic error body.
func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": err.Error(),
	})
}

type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2"`
	LastName  string `json:"lastName" validate:"required,min=2"`
	Username  string `json:"username" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,club_role"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,club_role"`
}

// CreateUser creates a new member account.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ? OR username = ?", req.Email, req.Username).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "A user with this email or username already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return h.log.Error("Failed to hash password", err)
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      policy.Role(req.Role).Normalize(),
	}

	if err := h.db.Create(&user).Error; err != nil {
		return h.log.Error("Failed to create user", err)
	}

	events.Emit("users.created", &user)
	h.log.Success("Created user %s (%s)", user.Username, user.Role)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    &user,
	})
}

// ListUsers backs the admin user-management table.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var users []models.User
	if err := h.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdatePassword sets a new password for the given user.
func (h *AdminHandler) UpdatePassword(c echo.Context) error {
	uid := c.Param("uid")

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	user, err := models.GetUserByID(uid, h.db)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return h.log.Error("Failed to hash password", err)
	}

	if err := h.db.Model(user).Update("password", string(hashedPassword)).Error; err != nil {
		return h.log.Error("Failed to update password", err)
	}

	// Password change invalidates every live session for the account.
	if err := h.db.Where("user_id = ?", uid).Delete(&models.Session{}).Error; err != nil {
		h.log.Warn("Failed to clear sessions for %s: %v", uid, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// UpdateRole changes a user's role and drops the cached profile so the
// new role takes effect on the user's next request.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	uid := c.Param("uid")

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	user, err := models.GetUserByID(uid, h.db)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	if err := h.db.Model(user).Update("role", policy.Role(req.Role).Normalize()).Error; err != nil {
		return h.log.Error("Failed to update role", err)
	}

	if h.cache != nil {
		h.cache.Clear(c.Request().Context(), uid)
	}

	events.Emit("users.role_changed", user)
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

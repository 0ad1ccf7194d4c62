package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubhouse/internal/api/middleware"
	"clubhouse/internal/config"
	"clubhouse/internal/models"
	"clubhouse/internal/session"
	"clubhouse/internal/utils"
	"clubhouse/internal/utils/logger"
)

// AuthHandler is the identity surface: sign-in, synchronous token
// refresh, sign-out and current-session introspection. Accounts are
// never self-registered; the privileged admin API creates them.
type AuthHandler struct {
	db    *gorm.DB
	cache *session.ProfileCache
	cfg   *config.Config
	log   *logger.Logger
}

func NewAuthHandler(db *gorm.DB, cache *session.ProfileCache, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cache: cache, cfg: cfg, log: logger.New("AuthHandler")}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type tokenResponse struct {
	Token   string       `json:"token"`
	Refresh string       `json:"refresh"`
	User    *models.User `json:"user"`
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := models.GetUserByEmail(req.Email, h.db)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	resp, err := h.openSession(c, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a fresh pair. The exchange is
// synchronous-on-demand: clients call it right before a privileged
// request rather than on a background timer.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := utils.ParseJWT(req.Refresh, h.cfg.JWT.Secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	sess := &models.Session{}
	if err := h.db.Where("user_id = ? AND refresh = ?", claims.UserID, req.Refresh).First(sess).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Session not found")
	}

	user, err := models.GetUserByID(claims.UserID, h.db)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	// The old session row is replaced wholesale; the previous token
	// pair dies with it.
	if err := h.db.Delete(sess).Error; err != nil {
		return h.log.Error("Failed to rotate session", err)
	}

	resp, err := h.openSession(c, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout closes the session and clears the cached profile.
func (h *AuthHandler) Logout(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}

	if err := h.db.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
		return h.log.Error("Failed to delete session", err)
	}

	if h.cache != nil {
		h.cache.Clear(c.Request().Context(), user.ID)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// GetMe returns the caller's profile.
func (h *AuthHandler) GetMe(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) openSession(c echo.Context, user *models.User) (*tokenResponse, error) {
	token, err := utils.GenerateJWT(user, h.cfg.JWT.Secret, h.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, h.log.Error("Failed to sign token", err)
	}
	refresh, err := utils.GenerateRefreshToken(user, h.cfg.JWT.Secret, h.cfg.JWT.RefreshTTL)
	if err != nil {
		return nil, h.log.Error("Failed to sign refresh token", err)
	}

	sess := &models.Session{
		UserID:    user.ID,
		Token:     token,
		Refresh:   refresh,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(h.cfg.JWT.RefreshTTL),
	}
	if err := h.db.Create(sess).Error; err != nil {
		return nil, h.log.Error("Failed to create session", err)
	}

	if h.cache != nil {
		h.cache.Set(c.Request().Context(), user)
	}

	return &tokenResponse{Token: token, Refresh: refresh, User: user}, nil
}

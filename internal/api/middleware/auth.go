package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clubhouse/internal/models"
	"clubhouse/internal/policy"
	"clubhouse/internal/session"
	"clubhouse/internal/utils"
	"clubhouse/internal/utils/logger"
)

var log = logger.New("auth_middleware")

const (
	ctxUserKey  = "currentUser"
	ctxActorKey = "currentActor"
)

// AuthMiddleware authenticates bearer tokens and attaches the actor
// profile to the request context. The profile comes from the session
// cache when warm, the profile store otherwise.
type AuthMiddleware struct {
	db        *gorm.DB
	cache     *session.ProfileCache
	jwtSecret string
}

// NewAuthMiddleware builds the middleware. cache may be nil (tests,
// cacheless deployments); every lookup then hits the profile store.
func NewAuthMiddleware(db *gorm.DB, cache *session.ProfileCache, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		db:        db,
		cache:     cache,
		jwtSecret: jwtSecret,
	}
}

// Middleware rejects requests without a valid token. Mutating routes
// sit behind this.
func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			if err := m.authenticate(c, token); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Optional authenticates when a token is present and lets anonymous
// callers through with no actor. Public read routes use this so signed-in
// users still get their context while anonymous reads keep working.
func (m *AuthMiddleware) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			if err := m.authenticate(c, token); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
	}
	return tokenParts[1], nil
}

func (m *AuthMiddleware) authenticate(c echo.Context, tokenString string) error {
	claims, err := utils.ParseJWT(tokenString, m.jwtSecret)
	if err != nil {
		log.Warn("Error parsing token: %v", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
	}

	// The token must still map to a live session; sign-out kills the
	// session row and with it the token, regardless of expiry.
	sess := &models.Session{}
	if err := m.db.Where("user_id = ? AND token = ?", claims.UserID, tokenString).First(sess).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Session not found")
	}

	user := m.lookupProfile(c, claims.UserID)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	c.Set(ctxUserKey, user)
	c.Set(ctxActorKey, user.Actor())
	return nil
}

// lookupProfile reads the profile from the cache, falling back to the
// store and warming the cache on a miss.
func (m *AuthMiddleware) lookupProfile(c echo.Context, uid string) *models.User {
	ctx := c.Request().Context()

	if m.cache != nil {
		if user := m.cache.Get(ctx, uid); user != nil {
			return user
		}
	}

	user, err := models.GetUserByID(uid, m.db)
	if err != nil {
		return nil
	}

	if m.cache != nil {
		m.cache.Set(ctx, user)
	}
	return user
}

// CurrentUser returns the authenticated profile, or nil for anonymous.
func CurrentUser(c echo.Context) *models.User {
	if user, ok := c.Get(ctxUserKey).(*models.User); ok {
		return user
	}
	return nil
}

// CurrentActor returns the policy actor for this request, or nil for
// anonymous callers.
func CurrentActor(c echo.Context) *policy.Actor {
	if actor, ok := c.Get(ctxActorKey).(*policy.Actor); ok {
		return actor
	}
	return nil
}

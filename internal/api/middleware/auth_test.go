package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/models"
	"clubhouse/internal/policy"
)

func newTestContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestMiddlewareMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(nil, nil, "secret")
	c, _ := newTestContext(t, "")

	err := m.Middleware()(okHandler)(c)

	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "Missing authorization header", he.Message)
}

func TestMiddlewareBadScheme(t *testing.T) {
	m := NewAuthMiddleware(nil, nil, "secret")

	for _, header := range []string{"Token abc", "Bearer", "abc", "Bearer a b"} {
		c, _ := newTestContext(t, header)
		err := m.Middleware()(okHandler)(c)

		require.Error(t, err, "header %q", header)
		he := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Invalid authorization header format", he.Message)
	}
}

func TestMiddlewareMalformedToken(t *testing.T) {
	m := NewAuthMiddleware(nil, nil, "secret")
	c, _ := newTestContext(t, "Bearer not-a-jwt")

	err := m.Middleware()(okHandler)(c)

	require.Error(t, err)
	he := err.(*echo.HTTPError)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "Invalid token", he.Message)
}

func TestOptionalAnonymousPassesThrough(t *testing.T) {
	m := NewAuthMiddleware(nil, nil, "secret")
	c, rec := newTestContext(t, "")

	called := false
	err := m.Optional()(func(c echo.Context) error {
		called = true
		assert.Nil(t, CurrentUser(c))
		assert.Nil(t, CurrentActor(c))
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalRejectsBadToken(t *testing.T) {
	m := NewAuthMiddleware(nil, nil, "secret")
	c, _ := newTestContext(t, "Bearer not-a-jwt")

	err := m.Optional()(okHandler)(c)

	require.Error(t, err)
	he := err.(*echo.HTTPError)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestCurrentHelpersEmptyContext(t *testing.T) {
	c, _ := newTestContext(t, "")
	assert.Nil(t, CurrentUser(c))
	assert.Nil(t, CurrentActor(c))
}

func TestCurrentHelpersRoundTrip(t *testing.T) {
	c, _ := newTestContext(t, "")

	user := &models.User{Role: policy.RoleEditor}
	user.ID = "u-1"
	c.Set(ctxUserKey, user)
	c.Set(ctxActorKey, user.Actor())

	assert.Equal(t, user, CurrentUser(c))
	require.NotNil(t, CurrentActor(c))
	assert.Equal(t, "u-1", CurrentActor(c).UID)
}

func TestRequireActionReorder(t *testing.T) {
	tests := []struct {
		name  string
		actor *policy.Actor
		allow bool
	}{
		{"anonymous", nil, false},
		{"user", &policy.Actor{UID: "u1", Role: policy.RoleUser}, false},
		{"editor", &policy.Actor{UID: "u2", Role: policy.RoleEditor}, false},
		{"admin", &policy.Actor{UID: "u3", Role: policy.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, "")
			if tt.actor != nil {
				c.Set(ctxActorKey, tt.actor)
			}

			err := RequireAction(policy.ActionReorder)(okHandler)(c)

			if tt.allow {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
			} else {
				require.Error(t, err)
				he := err.(*echo.HTTPError)
				assert.Equal(t, http.StatusForbidden, he.Code)
			}
		})
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/api/validator"
)

func newAdminTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// Validation failures on the privileged endpoints must use the same
// {success, message} envelope as bind and duplicate failures, not the
// generic error body.
func TestCreateUserValidationEnvelope(t *testing.T) {
	h := NewAdminHandler(nil, nil)

	c, rec := newAdminTestContext(t, `{"firstName":"A","lastName":"B","username":"x","email":"not-an-email","password":"short","role":"superadmin"}`)
	require.NoError(t, h.CreateUser(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestUpdatePasswordValidationEnvelope(t *testing.T) {
	h := NewAdminHandler(nil, nil)

	c, rec := newAdminTestContext(t, `{"password":"short"}`)
	c.SetParamNames("uid")
	c.SetParamValues("u-1")
	require.NoError(t, h.UpdatePassword(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestUpdateRoleValidationEnvelope(t *testing.T) {
	h := NewAdminHandler(nil, nil)

	c, rec := newAdminTestContext(t, `{"role":"test"}`)
	c.SetParamNames("uid")
	c.SetParamValues("u-1")
	require.NoError(t, h.UpdateRole(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}

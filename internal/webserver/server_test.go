package webserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/channelhub/config"
)

func newTestServer() *AdminServer {
	cfg := *config.DefaultAppConfig
	cfg.Web.Metrics = false
	return NewAdminServer(&cfg)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnknownRouteRendersMessage(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
}

func TestApiRoutesArePrefixed(t *testing.T) {
	srv := newTestServer()
	srv.ApiGET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int{"pong": 1})
	})
	srv.ApiDELETE("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pong":1}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandlerErrorRendersServerError(t *testing.T) {
	srv := newTestServer()
	srv.ApiGET("/boom", func(c echo.Context) error {
		return assert.AnError
	})

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Server Error"}`, rec.Body.String())
}

func TestIntegerRule(t *testing.T) {
	v := NewValidator()
	for _, ok := range []string{"0", "101", "-5", "+7"} {
		require.NoError(t, v.Var(ok, "integer"), ok)
	}
	for _, bad := range []string{"", "invalid", "1.5", "1e3", " 1", "010", "-01", "00"} {
		require.Error(t, v.Var(bad, "integer"), bad)
	}
}

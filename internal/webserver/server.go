package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/talkincode/channelhub/config"
)

const apiPrefix = "/api"

// AdminServer hosts the admin REST API
type AdminServer struct {
	root *echo.Echo
	api  *echo.Group
	addr string
}

// NewAdminServer builds the echo instance with the shared middleware stack
func NewAdminServer(cfg *config.AppConfig) *AdminServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.Validator = NewValidator()
	e.JSONSerializer = &JSONSerializer{}
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger())

	if cfg.Web.Metrics {
		p := prometheus.NewPrometheus("channelhub", nil)
		p.Use(e)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &AdminServer{
		root: e,
		api:  e.Group(apiPrefix),
		addr: cfg.Addr(),
	}
}

// Echo exposes the underlying echo instance (ServeHTTP in tests)
func (s *AdminServer) Echo() *echo.Echo {
	return s.root
}

// Use adds middleware to the API group
func (s *AdminServer) Use(m ...echo.MiddlewareFunc) {
	s.api.Use(m...)
}

func (s *AdminServer) ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.GET(path, h, m...)
}

func (s *AdminServer) ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.POST(path, h, m...)
}

func (s *AdminServer) ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.PUT(path, h, m...)
}

func (s *AdminServer) ApiPATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.PATCH(path, h, m...)
}

func (s *AdminServer) ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.DELETE(path, h, m...)
}

// Start serves until Shutdown is called
func (s *AdminServer) Start() error {
	zap.L().Info("admin server listening", zap.String("addr", s.addr))
	if err := s.root.Start(s.addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting up to timeout for in-flight requests
func (s *AdminServer) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.root.Shutdown(ctx)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				zap.L().Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			zap.L().Debug("request", fields...)
			return nil
		},
	})
}

// httpErrorHandler renders echo errors as {"message": ...}
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "Server Error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		zap.L().Error("unhandled request error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"message": message})
	}
	if err != nil {
		zap.L().Error("write error response", zap.Error(err))
	}
}

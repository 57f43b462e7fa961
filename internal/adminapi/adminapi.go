package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/talkincode/channelhub/internal/app"
	"github.com/talkincode/channelhub/internal/repository"
	"github.com/talkincode/channelhub/internal/webserver"
)

const appContextKey = "appctx"

// Init binds the application context to every API request and registers
// the resource routes
func Init(srv *webserver.AdminServer, appCtx app.AppContext) {
	srv.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})
	registerChannelRoutes(srv)
}

// GetAppContext returns the application context attached by Init
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// GetChannelRepo returns the channel repository of the current application
func GetChannelRepo(c echo.Context) repository.ChannelRepository {
	return GetAppContext(c).ChannelRepo()
}

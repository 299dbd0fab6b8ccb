// Package http provides the HTTP server for the chat gateway.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nkzhang905/chatgate/internal/config"
	"github.com/nkzhang905/chatgate/internal/hub"
	"github.com/nkzhang905/chatgate/internal/service"
	v1 "github.com/nkzhang905/chatgate/internal/transport/http/v1"
)

// NewServer creates and configures the gateway HTTP server: the chat
// streaming endpoint, feedback, session history, the WebSocket relay and
// the static frontend.
func NewServer(svc *service.Service, h *hub.Hub, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	handler := v1.NewHandler(svc, h, cfg)
	handler.RegisterRoutes(e)

	// Thin single-page chat frontend
	e.Static("/", cfg.WebRoot)

	return e
}

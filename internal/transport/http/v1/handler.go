// Package v1 provides the HTTP handlers for the chat gateway.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkzhang905/chatgate/internal/config"
	"github.com/nkzhang905/chatgate/internal/hub"
	"github.com/nkzhang905/chatgate/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	hub     *hub.Hub
	config  *config.Config
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service, h *hub.Hub, cfg *config.Config) *Handler {
	return &Handler{
		service: svc,
		hub:     h,
		config:  cfg,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chats", h.StreamChat)
	e.POST("/feedback", h.CollectFeedback)
	e.GET("/ws", h.HandleWebSocket)

	e.GET("/v1/sessions/:session_id/messages", h.GetSessionMessages)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "healthy",
		"chatbot":     h.config.ChatbotName,
		"environment": h.config.EnvironmentName,
		"version":     "0.1.0",
	})
}

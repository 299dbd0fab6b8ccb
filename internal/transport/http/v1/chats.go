package v1

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkzhang905/chatgate/internal/domain"
)

// StreamChat relays one conversation turn from the frontend to the agent
// backend and streams the response back as it arrives.
// POST /chats
func (h *Handler) StreamChat(c echo.Context) error {
	var inv domain.ChatInvocation
	if err := c.Bind(&inv); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp := c.Response()
	started := false
	sink := func(delta string) error {
		if !started {
			resp.Header().Set(echo.HeaderContentType, "text/event-stream")
			resp.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := resp.Write([]byte(delta)); err != nil {
			return err
		}
		resp.Flush()
		return nil
	}

	_, err := h.service.StreamChat(c.Request().Context(), inv, sink)
	if err != nil {
		if started {
			// Headers are gone; all we can do is drop the connection.
			log.Printf("ERROR: chat stream aborted: %v", err)
			return nil
		}
		return h.chatError(c, err)
	}
	return nil
}

// chatError maps pre-stream failures to HTTP statuses.
func (h *Handler) chatError(c echo.Context, err error) error {
	var policyErr *domain.PolicyError
	var serverErr *domain.ServerError
	var transportErr *domain.TransportError
	var sessionErr *domain.SessionError

	switch {
	case errors.As(err, &policyErr):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.As(err, &serverErr), errors.As(err, &transportErr):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	case errors.As(err, &sessionErr):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkzhang905/chatgate/internal/domain"
)

// CollectFeedback records user feedback for a run.
// POST /feedback
func (h *Handler) CollectFeedback(c echo.Context) error {
	var fb domain.Feedback
	if err := c.Bind(&fb); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if fb.RunID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "run_id is required"})
	}

	if err := h.service.RecordFeedback(c.Request().Context(), &fb); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/stylist/internal/domain"
)

// GetRequestEvents retrieves the collaborator call events of one chat request.
// GET /v1/requests/:request_id/events
func (h *Handler) GetRequestEvents(c echo.Context) error {
	requestID := c.Param("request_id")
	limit := 100
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}
	var types []string
	if t := c.QueryParam("types"); t != "" {
		for _, typ := range strings.Split(t, ",") {
			if typ = strings.TrimSpace(typ); typ != "" {
				types = append(types, typ)
			}
		}
	}

	events, err := h.service.GetRequestEvents(c.Request().Context(), requestID, types, limit)
	if err != nil {
		if errors.Is(err, domain.ErrEventLogDisabled) {
			return c.JSON(http.StatusNotFound, domain.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: err.Error()})
	}
	if events == nil {
		events = []domain.Event{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

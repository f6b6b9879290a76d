package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stockledger/inventory-client/internal/core/ports"
)

type EventHandler struct {
	session ports.SessionService
}

func NewEventHandler(session ports.SessionService) *EventHandler {
	return &EventHandler{session: session}
}

// List handles GET /v1/events?limit=N, most recent first.
//
// @Summary      Recent ledger events
// @Tags         events
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of events (0 for all)"
// @Success      200    {object}  eventsResponse
// @Failure      400    {object}  map[string]string
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	events := h.session.Events(limit)
	resp := eventsResponse{Events: make([]eventResponse, 0, len(events)), Count: len(events)}
	for _, ev := range events {
		resp.Events = append(resp.Events, eventResponse{DomainEvent: ev, Message: ev.Message()})
	}
	return c.JSON(http.StatusOK, resp)
}

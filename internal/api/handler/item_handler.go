package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

// RefreshClock is implemented by sessions that know when the mirror was last
// replaced.
type RefreshClock interface {
	RefreshedAt() time.Time
}

type ItemHandler struct {
	session ports.SessionService
}

func NewItemHandler(session ports.SessionService) *ItemHandler {
	return &ItemHandler{session: session}
}

// List handles GET /v1/items. Items come from the mirror, ordered by id.
//
// @Summary      List mirrored inventory
// @Tags         items
// @Produce      json
// @Success      200  {object}  itemsResponse
// @Router       /v1/items [get]
func (h *ItemHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.listResponse())
}

// Get handles GET /v1/items/:id.
//
// @Summary      Get one mirrored item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  itemResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	it, ok := h.session.Item(id)
	if !ok {
		return domain.ErrUnknownItem
	}
	return c.JSON(http.StatusOK, toItemResponse(it))
}

// Refresh handles POST /v1/items/refresh, the manual re-trigger after a sync
// failure.
//
// @Summary      Re-read the full inventory from the ledger
// @Tags         items
// @Produce      json
// @Success      200  {object}  itemsResponse
// @Failure      502  {object}  map[string]string
// @Router       /v1/items/refresh [post]
func (h *ItemHandler) Refresh(c echo.Context) error {
	if err := h.session.RefreshMirror(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.listResponse())
}

func (h *ItemHandler) listResponse() itemsResponse {
	items := h.session.Items()
	resp := itemsResponse{Items: make([]itemResponse, 0, len(items)), Count: len(items)}
	for _, it := range items {
		resp.Items = append(resp.Items, toItemResponse(it))
	}
	if clock, ok := h.session.(RefreshClock); ok {
		if at := clock.RefreshedAt(); !at.IsZero() {
			resp.RefreshedAt = &at
		}
	}
	return resp
}

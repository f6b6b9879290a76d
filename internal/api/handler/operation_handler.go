package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

// OperationHandler turns HTTP requests into ledger mutations. Each route is
// also guarded by the capability middleware; the dispatcher checks the gate
// again, so a stale route guard cannot leak an operation.
type OperationHandler struct {
	session ports.SessionService
}

func NewOperationHandler(session ports.SessionService) *OperationHandler {
	return &OperationHandler{session: session}
}

func (h *OperationHandler) dispatch(c echo.Context, status int, req domain.Request) error {
	result, err := h.session.Dispatch(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(status, toDispatchResponse(result))
}

// AddItem handles POST /v1/items.
//
// @Summary      Add an item to the ledger
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Item"
// @Success      201   {object}  dispatchResponse
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/items [post]
func (h *OperationHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.dispatch(c, http.StatusCreated, domain.AddItem(req.Name, req.Stock, req.Price, req.Threshold))
}

// Purchase handles POST /v1/items/:id/purchase. The payment is computed from
// the mirrored price.
//
// @Summary      Purchase an item
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Item id"
// @Param        body  body      purchaseRequest  true  "Quantity"
// @Success      200   {object}  dispatchResponse
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/items/{id}/purchase [post]
func (h *OperationHandler) Purchase(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	var req purchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.dispatch(c, http.StatusOK, domain.Purchase(id, req.Quantity))
}

// Restock handles POST /v1/items/:id/restock.
func (h *OperationHandler) Restock(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	var req restockRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.dispatch(c, http.StatusOK, domain.Restock(id, req.Amount))
}

// UpdatePrice handles PUT /v1/items/:id/price.
func (h *OperationHandler) UpdatePrice(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	var req priceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.dispatch(c, http.StatusOK, domain.UpdatePrice(id, req.Price))
}

// UpdateThreshold handles PUT /v1/items/:id/threshold.
func (h *OperationHandler) UpdateThreshold(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	var req thresholdRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.dispatch(c, http.StatusOK, domain.UpdateThreshold(id, req.Threshold))
}

// Remove handles DELETE /v1/items/:id.
func (h *OperationHandler) Remove(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	return h.dispatch(c, http.StatusOK, domain.RemoveItem(id))
}

// UpdateStaff handles POST /v1/staff.
//
// @Summary      Grant or revoke staff
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body      staffRequest  true  "Address and whether to add"
// @Success      200   {object}  dispatchResponse
// @Router       /v1/staff [post]
func (h *OperationHandler) UpdateStaff(c echo.Context) error {
	var req staffRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.dispatch(c, http.StatusOK, domain.UpdateStaff(domain.Account(req.Address), *req.Add))
}

// Withdraw handles POST /v1/withdraw.
func (h *OperationHandler) Withdraw(c echo.Context) error {
	return h.dispatch(c, http.StatusOK, domain.Withdraw())
}

// Pause handles POST /v1/pause.
func (h *OperationHandler) Pause(c echo.Context) error {
	return h.dispatch(c, http.StatusOK, domain.SetPaused(true))
}

// Unpause handles POST /v1/unpause.
func (h *OperationHandler) Unpause(c echo.Context) error {
	return h.dispatch(c, http.StatusOK, domain.SetPaused(false))
}

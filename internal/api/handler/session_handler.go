package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockledger/inventory-client/internal/core/ports"
)

type SessionHandler struct {
	session ports.SessionService
}

func NewSessionHandler(session ports.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

// Get handles GET /v1/session.
//
// @Summary      Active account, role, pause state and offered capabilities
// @Tags         session
// @Produce      json
// @Success      200  {object}  ports.SessionState
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session.State())
}

// Refresh handles POST /v1/session/refresh. It re-resolves the role and pause
// state from the ledger, e.g. after another session changed the staff list.
//
// @Summary      Re-resolve role and pause state
// @Tags         session
// @Produce      json
// @Success      200  {object}  ports.SessionState
// @Failure      503  {object}  map[string]string
// @Router       /v1/session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	if err := h.session.RefreshRole(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.session.State())
}

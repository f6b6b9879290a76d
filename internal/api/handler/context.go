package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// itemID parses the :id path parameter. Item ids are ledger-assigned unsigned
// integers; anything else is a 400 before any service call.
func itemID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "item id must be an unsigned integer")
	}
	return id, nil
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

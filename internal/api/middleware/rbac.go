package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// CapabilitySource reports the capabilities currently offered.
type CapabilitySource interface {
	Permitted() domain.CapabilitySet
}

// Offered lets a request through only while src offers capability. The gate
// is evaluated per request since role and pause state change at runtime.
func Offered(src CapabilitySource, capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !src.Permitted().Has(capability) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": string(capability) + " is not offered to this session",
				})
			}
			return next(c)
		}
	}
}

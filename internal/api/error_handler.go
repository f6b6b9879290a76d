package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Op    string `json:"op,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain and
// dispatch failures to status codes and renders {"error": "<message>"}.
// Unexpected errors are logged and answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var oe *service.OperationError
	if errors.As(err, &oe) {
		return operationStatus(oe), errorResponse{
			Error: oe.Error(),
			Op:    string(oe.Op),
			Kind:  string(oe.Kind),
		}
	}

	switch {
	case errors.Is(err, domain.ErrUnknownItem):
		return http.StatusNotFound, errorResponse{Error: "item not found"}
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrSync):
		return http.StatusBadGateway, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrRemoteUnavailable), errors.Is(err, domain.ErrCallReverted):
		return http.StatusServiceUnavailable, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func operationStatus(oe *service.OperationError) int {
	switch oe.Kind {
	case service.FailureUnauthorized:
		return http.StatusForbidden
	case service.FailureInvalid:
		if errors.Is(oe, domain.ErrUnknownItem) {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case service.FailureBusy:
		return http.StatusConflict
	case service.FailureRemoteUnavailable:
		return http.StatusServiceUnavailable
	default:
		// rejected, reverted, insufficient funds: the ledger said no.
		return http.StatusUnprocessableEntity
	}
}

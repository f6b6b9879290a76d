package rpc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// Error codes the ledger node and wallet use.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeDisconnected      = 4900
	CodeExecutionReverted = 3
	CodeTxRejected        = -32003
	CodeInsufficientFunds = -32010
	CodeServerError       = -32000
)

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error (%d): %s", e.Code, e.Message)
}

// mapError attaches the domain sentinel for e. Writes and reads map
// rejections and reverts differently: a rejected account request is the
// user's, a reverted query is a call failure.
func mapError(e *Error, write bool) error {
	var sentinel error
	switch e.Code {
	case CodeUserRejected:
		sentinel = domain.ErrUserRejected
		if write {
			sentinel = domain.ErrRejected
		}
	case CodeUnauthorized:
		sentinel = domain.ErrUnauthorized
	case CodeDisconnected:
		sentinel = domain.ErrNoProvider
	case CodeExecutionReverted:
		sentinel = domain.ErrCallReverted
		if write {
			sentinel = domain.ErrReverted
		}
	case CodeTxRejected:
		sentinel = domain.ErrRejected
	case CodeInsufficientFunds:
		sentinel = domain.ErrInsufficientFunds
	default:
		msg := strings.ToLower(e.Message)
		switch {
		case strings.Contains(msg, "insufficient funds"):
			sentinel = domain.ErrInsufficientFunds
		case write && strings.Contains(msg, "execution reverted"):
			sentinel = domain.ErrReverted
		default:
			sentinel = domain.ErrRemoteUnavailable
		}
	}
	return fmt.Errorf("%w: %w", sentinel, e)
}

// AsError extracts the JSON-RPC error object from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

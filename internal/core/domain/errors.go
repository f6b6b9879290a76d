package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by every layer. Gateway adapters return these
// (optionally wrapped) and the dispatcher classifies them.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRemoteUnavailable = errors.New("remote unavailable")
	ErrSync              = errors.New("inventory sync failed")
	ErrOperationFailed   = errors.New("operation failed")

	ErrRejected          = fmt.Errorf("%w: rejected", ErrOperationFailed)
	ErrReverted          = fmt.Errorf("%w: reverted", ErrOperationFailed)
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrOperationFailed)

	// ErrCallReverted is returned by read-only queries the ledger refused.
	ErrCallReverted = errors.New("call reverted")
)

// Identity collaborator failures. Both mean the session cannot start.
var (
	ErrNoProvider   = fmt.Errorf("%w: no identity provider", ErrRemoteUnavailable)
	ErrUserRejected = errors.New("account request rejected by user")
)

// Local dispatch failures that never reach the gateway.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownItem     = errors.New("item not in mirror")
	ErrItemBusy        = errors.New("operation already in flight for item")
	ErrValueOverflow   = errors.New("purchase value overflows")
)

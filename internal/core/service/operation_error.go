package service

import (
	"errors"
	"fmt"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// FailureKind classifies why a dispatch did not confirm.
type FailureKind string

const (
	FailureUnauthorized      FailureKind = "unauthorized"
	FailureRejected          FailureKind = "rejected"
	FailureReverted          FailureKind = "reverted"
	FailureInsufficientFunds FailureKind = "insufficient_funds"
	FailureRemoteUnavailable FailureKind = "remote_unavailable"

	// Local failures, raised before anything is submitted.
	FailureInvalid FailureKind = "invalid"
	FailureBusy    FailureKind = "busy"
)

// OperationError is the user-visible failure of a dispatch. It carries the
// operation name so surfaces can report which action failed.
type OperationError struct {
	Op   domain.Operation
	Kind FailureKind
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// classify maps an error onto the failure taxonomy. Errors the gateway did not
// classify are treated as remote unavailability: the outcome on the ledger is
// unknown, which is exactly why nothing is retried.
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return FailureUnauthorized
	case errors.Is(err, domain.ErrInsufficientFunds):
		return FailureInsufficientFunds
	case errors.Is(err, domain.ErrReverted), errors.Is(err, domain.ErrCallReverted):
		return FailureReverted
	case errors.Is(err, domain.ErrRejected), errors.Is(err, domain.ErrUserRejected):
		return FailureRejected
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrValueOverflow):
		return FailureInvalid
	case errors.Is(err, domain.ErrItemBusy):
		return FailureBusy
	default:
		return FailureRemoteUnavailable
	}
}

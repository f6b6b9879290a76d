package ports

import (
	"context"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// Submission is a mutating call bound for the ledger.
type Submission struct {
	Op   domain.Operation
	Args []any
	From domain.Account
	// Value is the payment attached to the transaction, in the smallest
	// currency unit. Zero for every operation except purchase.
	Value uint64
}

// Receipt confirms that a submission was mined.
type Receipt struct {
	TxHash string `json:"txHash"`
	Block  uint64 `json:"blockNumber"`
}

// Gateway is the typed call/transaction interface to the remote ledger and the
// only component that performs chain I/O.
//
// Queries fail with domain.ErrRemoteUnavailable or domain.ErrCallReverted.
// Submit fails with domain.ErrRejected, domain.ErrReverted,
// domain.ErrInsufficientFunds, domain.ErrUnauthorized or
// domain.ErrRemoteUnavailable. Submit is not idempotent and must never be
// retried by callers.
type Gateway interface {
	QueryOwner(ctx context.Context) (domain.Account, error)
	QueryStaff(ctx context.Context, account domain.Account) (bool, error)
	QueryPaused(ctx context.Context) (bool, error)
	QueryAllItems(ctx context.Context) (domain.ItemSnapshot, error)
	Submit(ctx context.Context, sub Submission) (*Receipt, error)

	// Subscribe returns a lazy, infinite stream of events of one kind. The
	// channel closes when ctx is done or the stream ends; it is never
	// restarted.
	Subscribe(ctx context.Context, kind domain.EventKind) (<-chan domain.LedgerEvent, error)
}

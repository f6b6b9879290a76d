package ports

import (
	"context"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// SessionState is a point-in-time view of the session's authoritative inputs
// and the capabilities they imply.
type SessionState struct {
	Account   domain.Account      `json:"account"`
	Role      domain.Role         `json:"role"`
	Paused    bool                `json:"paused"`
	Permitted []domain.Capability `json:"permitted"`
}

// DispatchResult describes a confirmed mutation.
type DispatchResult struct {
	Op      domain.Operation `json:"op"`
	Value   uint64           `json:"value"`
	Receipt *Receipt         `json:"receipt,omitempty"`
	// RefreshErr is set when the transaction confirmed but the follow-up
	// mirror refresh failed. The mutation must not be resubmitted.
	RefreshErr error `json:"-"`
}

// SessionService is what outer surfaces (HTTP API, CLI) use.
type SessionService interface {
	State() SessionState
	Permitted() domain.CapabilitySet
	Items() []domain.InventoryItem
	Item(id uint64) (domain.InventoryItem, bool)
	Events(limit int) []domain.DomainEvent

	Dispatch(ctx context.Context, req domain.Request) (*DispatchResult, error)
	RefreshMirror(ctx context.Context) error
	RefreshRole(ctx context.Context) error
}

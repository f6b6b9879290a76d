package domain

import (
	"fmt"
	"time"
)

// EventKind is one of the ledger's domain event types.
type EventKind string

const (
	EventItemAdded        EventKind = "ItemAdded"
	EventItemPurchased    EventKind = "ItemPurchased"
	EventStockUpdated     EventKind = "StockUpdated"
	EventPriceUpdated     EventKind = "PriceUpdated"
	EventThresholdUpdated EventKind = "ThresholdUpdated"
	EventLowStock         EventKind = "LowStock"
	EventStaffAdded       EventKind = "StaffAdded"
	EventStaffRemoved     EventKind = "StaffRemoved"
	EventPaused           EventKind = "Paused"
	EventUnpaused         EventKind = "Unpaused"
	EventWithdrawal       EventKind = "Withdrawal"
)

// EventKinds lists every kind the client subscribes to.
var EventKinds = []EventKind{
	EventItemAdded,
	EventItemPurchased,
	EventStockUpdated,
	EventPriceUpdated,
	EventThresholdUpdated,
	EventLowStock,
	EventStaffAdded,
	EventStaffRemoved,
	EventPaused,
	EventUnpaused,
	EventWithdrawal,
}

// EventPayload carries the kind-specific fields of a ledger event. Fields not
// emitted by a kind stay zero.
type EventPayload struct {
	ItemID    uint64  `json:"itemId,omitempty"`
	Name      string  `json:"name,omitempty"`
	Stock     uint64  `json:"stock,omitempty"`
	Price     uint64  `json:"price,omitempty"`
	Threshold uint64  `json:"threshold,omitempty"`
	Quantity  uint64  `json:"quantity,omitempty"`
	Buyer     Account `json:"buyer,omitempty"`
	Account   Account `json:"account,omitempty"`
	By        Account `json:"by,omitempty"`
	Owner     Account `json:"owner,omitempty"`
	Amount    uint64  `json:"amount,omitempty"`

	// NewStock, NewPrice and NewThreshold are set by the *Updated kinds.
	NewStock     uint64 `json:"newStock,omitempty"`
	NewPrice     uint64 `json:"newPrice,omitempty"`
	NewThreshold uint64 `json:"newThreshold,omitempty"`
}

// LedgerEvent is an event as delivered by a gateway subscription, before the
// client stamps it.
type LedgerEvent struct {
	Kind    EventKind    `json:"event"`
	Payload EventPayload `json:"returnValues"`
	// Ref is the ledger's stable position (tx hash and log index) when the
	// gateway provides one. Empty otherwise.
	Ref string `json:"ref,omitempty"`
}

// DomainEvent is an observed ledger event stamped on arrival. It is not
// authoritative for reconciliation and is never applied to the mirror.
type DomainEvent struct {
	ID         string       `json:"id"`
	Kind       EventKind    `json:"kind"`
	Payload    EventPayload `json:"payload"`
	Ref        string       `json:"ref,omitempty"`
	ReceivedAt time.Time    `json:"received_at"`
}

// Message renders the event for people reading the log.
func (e DomainEvent) Message() string {
	p := e.Payload
	switch e.Kind {
	case EventItemAdded:
		return fmt.Sprintf("Item %d (%s) added with stock: %d, price: %d", p.ItemID, p.Name, p.Stock, p.Price)
	case EventItemPurchased:
		return fmt.Sprintf("Item %d purchased by %s, quantity: %d", p.ItemID, p.Buyer, p.Quantity)
	case EventStockUpdated:
		return fmt.Sprintf("Item %d stock updated to %d", p.ItemID, p.NewStock)
	case EventPriceUpdated:
		return fmt.Sprintf("Item %d price updated to %d", p.ItemID, p.NewPrice)
	case EventThresholdUpdated:
		return fmt.Sprintf("Item %d threshold updated to %d", p.ItemID, p.NewThreshold)
	case EventLowStock:
		return fmt.Sprintf("Low stock alert for item %d! Current stock: %d, Threshold: %d", p.ItemID, p.Stock, p.Threshold)
	case EventStaffAdded:
		return fmt.Sprintf("Staff member added: %s", p.Account)
	case EventStaffRemoved:
		return fmt.Sprintf("Staff member removed: %s", p.Account)
	case EventPaused:
		return fmt.Sprintf("Contract paused by: %s", p.By)
	case EventUnpaused:
		return fmt.Sprintf("Contract unpaused by: %s", p.By)
	case EventWithdrawal:
		return fmt.Sprintf("%d wei withdrawn by %s", p.Amount, p.Owner)
	}
	return string(e.Kind)
}

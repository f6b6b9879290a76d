package domain

import (
	"fmt"
	"math/bits"
	"strings"
)

// Operation is the ledger-side name of a mutating call.
type Operation string

const (
	OpAddItem         Operation = "addItem"
	OpPurchase        Operation = "purchase"
	OpRestock         Operation = "restock"
	OpUpdatePrice     Operation = "updatePrice"
	OpUpdateThreshold Operation = "updateThreshold"
	OpRemoveItem      Operation = "removeItem"
	OpUpdateStaff     Operation = "updateStaff"
	OpWithdraw        Operation = "withdraw"
	OpSetPaused       Operation = "setPaused"
)

// Request is a mutating operation together with its arguments. Only the
// fields relevant to Op are read; constructors below fill them.
type Request struct {
	Op        Operation
	ItemID    uint64
	Name      string
	Stock     uint64
	Price     uint64
	Threshold uint64
	Quantity  uint64
	Address   Account
	Flag      bool // updateStaff: add; setPaused: paused
}

func AddItem(name string, stock, price, threshold uint64) Request {
	return Request{Op: OpAddItem, Name: name, Stock: stock, Price: price, Threshold: threshold}
}

func Purchase(id, quantity uint64) Request {
	return Request{Op: OpPurchase, ItemID: id, Quantity: quantity}
}

func Restock(id, amount uint64) Request {
	return Request{Op: OpRestock, ItemID: id, Quantity: amount}
}

func UpdatePrice(id, price uint64) Request {
	return Request{Op: OpUpdatePrice, ItemID: id, Price: price}
}

func UpdateThreshold(id, threshold uint64) Request {
	return Request{Op: OpUpdateThreshold, ItemID: id, Threshold: threshold}
}

func RemoveItem(id uint64) Request {
	return Request{Op: OpRemoveItem, ItemID: id}
}

func UpdateStaff(address Account, add bool) Request {
	return Request{Op: OpUpdateStaff, Address: address, Flag: add}
}

func Withdraw() Request {
	return Request{Op: OpWithdraw}
}

func SetPaused(paused bool) Request {
	return Request{Op: OpSetPaused, Flag: paused}
}

// Capability maps the request onto the capability the gate must offer.
// setPaused splits into pause and unpause by its target state.
func (r Request) Capability() (Capability, error) {
	switch r.Op {
	case OpAddItem:
		return CapAdd, nil
	case OpPurchase:
		return CapPurchase, nil
	case OpRestock:
		return CapRestock, nil
	case OpUpdatePrice:
		return CapUpdatePrice, nil
	case OpUpdateThreshold:
		return CapUpdateThreshold, nil
	case OpRemoveItem:
		return CapRemove, nil
	case OpUpdateStaff:
		return CapManageStaff, nil
	case OpWithdraw:
		return CapWithdraw, nil
	case OpSetPaused:
		if r.Flag {
			return CapPause, nil
		}
		return CapUnpause, nil
	}
	return "", fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, r.Op)
}

// TargetsItem reports whether the request addresses an existing item.
func (r Request) TargetsItem() bool {
	switch r.Op {
	case OpPurchase, OpRestock, OpUpdatePrice, OpUpdateThreshold, OpRemoveItem:
		return true
	}
	return false
}

// Validate checks argument shape only. Whether the ledger accepts the values
// is not the client's call.
func (r Request) Validate() error {
	switch r.Op {
	case OpAddItem:
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("%w: item name is required", ErrInvalidArgument)
		}
	case OpPurchase:
		if r.Quantity == 0 {
			return fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidArgument)
		}
	case OpRestock:
		if r.Quantity == 0 {
			return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidArgument)
		}
	case OpUpdateStaff:
		if r.Address.IsZero() {
			return fmt.Errorf("%w: staff address is required", ErrInvalidArgument)
		}
	}
	_, err := r.Capability()
	return err
}

// Args returns the positional ledger arguments for the operation.
func (r Request) Args() []any {
	switch r.Op {
	case OpAddItem:
		return []any{r.Name, r.Stock, r.Price, r.Threshold}
	case OpPurchase, OpRestock:
		return []any{r.ItemID, r.Quantity}
	case OpUpdatePrice:
		return []any{r.ItemID, r.Price}
	case OpUpdateThreshold:
		return []any{r.ItemID, r.Threshold}
	case OpRemoveItem:
		return []any{r.ItemID}
	case OpUpdateStaff:
		return []any{string(r.Address), r.Flag}
	case OpSetPaused:
		return []any{r.Flag}
	}
	return []any{}
}

// PurchaseValue is price × quantity, failing on uint64 overflow.
func PurchaseValue(price, quantity uint64) (uint64, error) {
	hi, lo := bits.Mul64(price, quantity)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %d × %d", ErrValueOverflow, price, quantity)
	}
	return lo, nil
}

package domain

import "sort"

// Capability names an action the client may offer to the active account.
type Capability string

const (
	CapAdd             Capability = "add"
	CapPurchase        Capability = "purchase"
	CapRestock         Capability = "restock"
	CapUpdatePrice     Capability = "updatePrice"
	CapUpdateThreshold Capability = "updateThreshold"
	CapRemove          Capability = "remove"
	CapManageStaff     Capability = "manageStaff"
	CapWithdraw        Capability = "withdraw"
	CapPause           Capability = "pause"
	CapUnpause         Capability = "unpause"
)

type gateKey struct {
	role   Role
	paused bool
}

// capabilityTable is the complete gate. Purchase is offered to the public
// only; owner and staff never self-purchase.
var capabilityTable = map[gateKey][]Capability{
	{RoleOwner, false}:  {CapAdd, CapRestock, CapUpdatePrice, CapUpdateThreshold, CapRemove, CapManageStaff, CapWithdraw, CapPause},
	{RoleOwner, true}:   {CapManageStaff, CapWithdraw, CapUnpause},
	{RoleStaff, false}:  {CapRestock},
	{RoleStaff, true}:   {},
	{RolePublic, false}: {CapPurchase},
	{RolePublic, true}:  {},
}

// CapabilitySet is an immutable set of capabilities.
type CapabilitySet map[Capability]struct{}

// Permitted returns the capabilities offered for role under the given pause
// state. Unknown roles are offered nothing.
func Permitted(role Role, paused bool) CapabilitySet {
	caps := capabilityTable[gateKey{role, paused}]
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities in lexical order.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

package domain

import "strings"

// Account is the address of a ledger identity. The ledger does not guarantee
// that addresses come back in the case they were submitted in.
type Account string

// Equal compares two accounts case-insensitively.
func (a Account) Equal(other Account) bool {
	return strings.EqualFold(strings.TrimSpace(string(a)), strings.TrimSpace(string(other)))
}

func (a Account) IsZero() bool {
	return strings.TrimSpace(string(a)) == ""
}

func (a Account) String() string { return string(a) }

// Role is the permission tier of the active account.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleStaff  Role = "staff"
	RolePublic Role = "public"
)

// ResolveRole derives the role of active from the ledger's owner address and
// staff predicate. Ownership takes precedence over staff membership.
func ResolveRole(active, owner Account, isStaff bool) Role {
	switch {
	case !active.IsZero() && active.Equal(owner):
		return RoleOwner
	case isStaff:
		return RoleStaff
	default:
		return RolePublic
	}
}

// Identity is the active account together with its resolved role.
type Identity struct {
	Account Account `json:"account"`
	Role    Role    `json:"role"`
}

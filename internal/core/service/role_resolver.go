package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

// RoleResolver determines the active account and its role. Roles are read
// from the ledger each time; nothing is cached here.
type RoleResolver struct {
	gateway  ports.Gateway
	identity ports.IdentityProvider
	log      zerolog.Logger
}

func NewRoleResolver(gateway ports.Gateway, identity ports.IdentityProvider, log zerolog.Logger) *RoleResolver {
	return &RoleResolver{gateway: gateway, identity: identity, log: log}
}

// Resolve asks the identity collaborator for the active account, then
// resolves its role.
func (r *RoleResolver) Resolve(ctx context.Context) (domain.Identity, error) {
	account, err := r.identity.RequestActiveAccount(ctx)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("request active account: %w", err)
	}
	if account.IsZero() {
		return domain.Identity{}, fmt.Errorf("request active account: %w", domain.ErrNoProvider)
	}

	role, err := r.RoleOf(ctx, account)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{Account: account, Role: role}, nil
}

// RoleOf queries the owner address and staff predicate for account.
func (r *RoleResolver) RoleOf(ctx context.Context, account domain.Account) (domain.Role, error) {
	owner, err := r.gateway.QueryOwner(ctx)
	if err != nil {
		return "", fmt.Errorf("query owner: %w", err)
	}

	// The owner is never asked about staff membership.
	if account.Equal(owner) {
		return domain.RoleOwner, nil
	}

	isStaff, err := r.gateway.QueryStaff(ctx, account)
	if err != nil {
		return "", fmt.Errorf("query staff: %w", err)
	}

	role := domain.ResolveRole(account, owner, isStaff)
	r.log.Debug().Str("account", account.String()).Str("role", string(role)).Msg("role resolved")
	return role, nil
}

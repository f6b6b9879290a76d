package ports

import (
	"context"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// IdentityProvider is the signing/wallet collaborator. It fails with
// domain.ErrNoProvider or domain.ErrUserRejected.
type IdentityProvider interface {
	RequestActiveAccount(ctx context.Context) (domain.Account, error)
}

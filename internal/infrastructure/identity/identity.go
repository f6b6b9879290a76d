// Package identity provides the active account the session acts as.
package identity

import (
	"context"
	"fmt"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

// Static always answers with a configured account.
type Static struct {
	account domain.Account
}

var _ ports.IdentityProvider = Static{}

func NewStatic(account string) Static {
	return Static{account: domain.Account(account)}
}

func (s Static) RequestActiveAccount(_ context.Context) (domain.Account, error) {
	if s.account.IsZero() {
		return "", fmt.Errorf("%w: no account configured", domain.ErrNoProvider)
	}
	return s.account, nil
}

// AccountRequester is the wallet side of the node connection.
type AccountRequester interface {
	RequestAccounts(ctx context.Context) ([]domain.Account, error)
}

// Wallet asks the connected wallet for its accounts and takes the first.
type Wallet struct {
	requester AccountRequester
}

var _ ports.IdentityProvider = (*Wallet)(nil)

func NewWallet(requester AccountRequester) *Wallet {
	return &Wallet{requester: requester}
}

func (w *Wallet) RequestActiveAccount(ctx context.Context) (domain.Account, error) {
	accounts, err := w.requester.RequestAccounts(ctx)
	if err != nil {
		return "", fmt.Errorf("request accounts: %w", err)
	}
	for _, a := range accounts {
		if !a.IsZero() {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: wallet exposed no accounts", domain.ErrNoProvider)
}

// New picks the provider: a configured account wins, otherwise the wallet.
func New(account string, requester AccountRequester) ports.IdentityProvider {
	if account != "" {
		return NewStatic(account)
	}
	return NewWallet(requester)
}

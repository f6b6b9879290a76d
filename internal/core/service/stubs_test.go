package service

import (
	"context"
	"sync"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub gateway
// ---------------------------------------------------------------------------

type stubGateway struct {
	mu sync.Mutex

	owner    domain.Account
	staff    map[domain.Account]bool
	paused   bool
	snapshot domain.ItemSnapshot

	ownerErr    error
	staffErr    error
	pausedErr   error
	itemsErr    error
	submitErr   error
	subscribeFn func(ctx context.Context, kind domain.EventKind) (<-chan domain.LedgerEvent, error)

	// onSubmit runs after a successful submit, e.g. to advance the ledger
	// snapshot the next refresh will see.
	onSubmit func(sub ports.Submission)

	calls       map[string]int
	submissions []ports.Submission
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		owner: "0xOwner",
		staff: map[domain.Account]bool{},
		calls: map[string]int{},
	}
}

func (g *stubGateway) count(name string) {
	g.mu.Lock()
	g.calls[name]++
	g.mu.Unlock()
}

func (g *stubGateway) totalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

func (g *stubGateway) callCount(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[name]
}

func (g *stubGateway) resetCalls() {
	g.mu.Lock()
	g.calls = map[string]int{}
	g.mu.Unlock()
}

func (g *stubGateway) setSnapshot(s domain.ItemSnapshot) {
	g.mu.Lock()
	g.snapshot = s
	g.mu.Unlock()
}

func (g *stubGateway) QueryOwner(_ context.Context) (domain.Account, error) {
	g.count("owner")
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.owner, g.ownerErr
}

func (g *stubGateway) QueryStaff(_ context.Context, account domain.Account) (bool, error) {
	g.count("staff")
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.staff[account], g.staffErr
}

func (g *stubGateway) QueryPaused(_ context.Context) (bool, error) {
	g.count("paused")
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused, g.pausedErr
}

func (g *stubGateway) QueryAllItems(_ context.Context) (domain.ItemSnapshot, error) {
	g.count("items")
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot, g.itemsErr
}

func (g *stubGateway) Submit(_ context.Context, sub ports.Submission) (*ports.Receipt, error) {
	g.count("submit")
	g.mu.Lock()
	g.submissions = append(g.submissions, sub)
	err, hook := g.submitErr, g.onSubmit
	g.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if hook != nil {
		hook(sub)
	}
	return &ports.Receipt{TxHash: "0xtx", Block: 1}, nil
}

func (g *stubGateway) Subscribe(ctx context.Context, kind domain.EventKind) (<-chan domain.LedgerEvent, error) {
	g.count("subscribe")
	if g.subscribeFn != nil {
		return g.subscribeFn(ctx, kind)
	}
	ch := make(chan domain.LedgerEvent)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (g *stubGateway) lastSubmission() ports.Submission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submissions[len(g.submissions)-1]
}

// ---------------------------------------------------------------------------
// Stub identity provider
// ---------------------------------------------------------------------------

type stubIdentity struct {
	account domain.Account
	err     error
}

func (i stubIdentity) RequestActiveAccount(_ context.Context) (domain.Account, error) {
	return i.account, i.err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func snapshotOf(items ...domain.InventoryItem) domain.ItemSnapshot {
	var s domain.ItemSnapshot
	for _, it := range items {
		s.IDs = append(s.IDs, it.ID)
		s.Names = append(s.Names, it.Name)
		s.Stocks = append(s.Stocks, it.Stock)
		s.Prices = append(s.Prices, it.Price)
		s.Thresholds = append(s.Thresholds, it.Threshold)
	}
	return s
}

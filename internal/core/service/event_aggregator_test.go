package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// feed hands out one controllable stream per event kind.
type feed struct {
	mu      sync.Mutex
	streams map[domain.EventKind]chan domain.LedgerEvent
	failOn  map[domain.EventKind]error
}

func newFeed() *feed {
	return &feed{
		streams: map[domain.EventKind]chan domain.LedgerEvent{},
		failOn:  map[domain.EventKind]error{},
	}
}

func (f *feed) subscribe(_ context.Context, kind domain.EventKind) (<-chan domain.LedgerEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn[kind]; err != nil {
		return nil, err
	}
	ch := make(chan domain.LedgerEvent, 8)
	f.streams[kind] = ch
	return ch, nil
}

func (f *feed) subscribed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.streams)
}

func (f *feed) emit(kind domain.EventKind, ev domain.LedgerEvent) {
	f.mu.Lock()
	ch := f.streams[kind]
	f.mu.Unlock()
	ch <- ev
}

func (f *feed) end(kind domain.EventKind) {
	f.mu.Lock()
	ch := f.streams[kind]
	f.mu.Unlock()
	close(ch)
}

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func (d *memDedup) FirstSeen(_ context.Context, ref string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	if d.seen[ref] {
		return false, nil
	}
	d.seen[ref] = true
	return true, nil
}

func runAggregator(t *testing.T, f *feed, dedup EventDeduper) (*EventLog, context.CancelFunc, <-chan error) {
	t.Helper()
	gw := newStubGateway()
	gw.subscribeFn = f.subscribe
	events := NewEventLog(DefaultEventLogCapacity)
	agg := NewEventAggregator(gw, events, dedup, zerolog.Nop())
	agg.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- agg.Run(ctx) }()
	t.Cleanup(cancel)
	return events, cancel, done
}

func TestEventAggregator_SubscribesToEveryKind(t *testing.T) {
	f := newFeed()
	runAggregator(t, f, nil)

	require.Eventually(t, func() bool { return f.subscribed() == len(domain.EventKinds) },
		time.Second, 5*time.Millisecond)
	assert.Len(t, domain.EventKinds, 11)
}

func TestEventAggregator_StampsAndLogsInArrivalOrder(t *testing.T) {
	f := newFeed()
	events, _, _ := runAggregator(t, f, nil)
	require.Eventually(t, func() bool { return f.subscribed() == len(domain.EventKinds) },
		time.Second, 5*time.Millisecond)

	f.emit(domain.EventItemAdded, domain.LedgerEvent{
		Kind:    domain.EventItemAdded,
		Payload: domain.EventPayload{ItemID: 1, Name: "Widget", Stock: 5},
	})
	require.Eventually(t, func() bool { return events.Len() == 1 }, time.Second, 5*time.Millisecond)

	// Kind missing on the wire is taken from the subscription.
	f.emit(domain.EventItemPurchased, domain.LedgerEvent{
		Payload: domain.EventPayload{ItemID: 1, Quantity: 2, Buyer: "0xBuyer"},
	})
	require.Eventually(t, func() bool { return events.Len() == 2 }, time.Second, 5*time.Millisecond)

	got := events.Entries(0)
	assert.Equal(t, domain.EventItemPurchased, got[0].Kind)
	assert.Equal(t, domain.EventItemAdded, got[1].Kind)
	assert.NotEmpty(t, got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got[0].ReceivedAt)
	assert.Equal(t, "Widget", got[1].Payload.Name)
}

func TestEventAggregator_FailedSubscriptionDoesNotStopOthers(t *testing.T) {
	f := newFeed()
	f.failOn[domain.EventPaused] = errors.New("subscription refused")
	events, _, _ := runAggregator(t, f, nil)
	require.Eventually(t, func() bool { return f.subscribed() == len(domain.EventKinds)-1 },
		time.Second, 5*time.Millisecond)

	f.end(domain.EventStockUpdated)
	f.emit(domain.EventPriceUpdated, domain.LedgerEvent{Payload: domain.EventPayload{ItemID: 3}})

	require.Eventually(t, func() bool { return events.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, domain.EventPriceUpdated, events.Entries(1)[0].Kind)
}

func TestEventAggregator_RunReturnsOnCancel(t *testing.T) {
	f := newFeed()
	_, cancel, done := runAggregator(t, f, nil)
	require.Eventually(t, func() bool { return f.subscribed() == len(domain.EventKinds) },
		time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("aggregator did not stop")
	}
}

func TestEventAggregator_Dedup(t *testing.T) {
	t.Run("redelivery with the same ref is skipped", func(t *testing.T) {
		f := newFeed()
		events, _, _ := runAggregator(t, f, &memDedup{seen: map[string]bool{}})
		require.Eventually(t, func() bool { return f.subscribed() == len(domain.EventKinds) },
			time.Second, 5*time.Millisecond)

		ev := domain.LedgerEvent{Kind: domain.EventStockUpdated, Ref: "0xabc:0", Payload: domain.EventPayload{ItemID: 1, Amount: 4}}
		f.emit(domain.EventStockUpdated, ev)
		f.emit(domain.EventStockUpdated, ev)
		f.emit(domain.EventStockUpdated, domain.LedgerEvent{Kind: domain.EventStockUpdated, Ref: "0xabc:1"})

		require.Eventually(t, func() bool { return events.Len() == 2 }, time.Second, 5*time.Millisecond)
		got := events.Entries(0)
		assert.Equal(t, "0xabc:1", got[0].Ref)
		assert.Equal(t, "0xabc:0", got[1].Ref)
	})

	t.Run("events without a ref are always logged", func(t *testing.T) {
		f := newFeed()
		events, _, _ := runAggregator(t, f, &memDedup{seen: map[string]bool{}})
		require.Eventually(t, func() bool { return f.subscribed() == len(domain.EventKinds) },
			time.Second, 5*time.Millisecond)

		f.emit(domain.EventUnpaused, domain.LedgerEvent{})
		f.emit(domain.EventUnpaused, domain.LedgerEvent{})

		require.Eventually(t, func() bool { return events.Len() == 2 }, time.Second, 5*time.Millisecond)
	})

	t.Run("dedup failure logs the event anyway", func(t *testing.T) {
		f := newFeed()
		events, _, _ := runAggregator(t, f, &memDedup{err: errors.New("redis down")})
		require.Eventually(t, func() bool { return f.subscribed() == len(domain.EventKinds) },
			time.Second, 5*time.Millisecond)

		ev := domain.LedgerEvent{Kind: domain.EventWithdrawal, Ref: "0xdef:2"}
		f.emit(domain.EventWithdrawal, ev)
		f.emit(domain.EventWithdrawal, ev)

		require.Eventually(t, func() bool { return events.Len() == 2 }, time.Second, 5*time.Millisecond)
	})
}

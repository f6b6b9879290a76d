package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// blockingGateway hands each QueryAllItems call to the test, which decides
// when and with what it completes.
type blockingGateway struct {
	*stubGateway
	pending chan chan domain.ItemSnapshot
}

func (g *blockingGateway) QueryAllItems(_ context.Context) (domain.ItemSnapshot, error) {
	reply := make(chan domain.ItemSnapshot)
	g.pending <- reply
	return <-reply, nil
}

func TestMirror_Refresh_ReplacesWholeMap(t *testing.T) {
	gw := newStubGateway()
	gw.setSnapshot(snapshotOf(
		domain.InventoryItem{ID: 1, Name: "Widget", Stock: 5, Price: 100, Threshold: 2},
		domain.InventoryItem{ID: 2, Name: "Gadget", Stock: 1, Price: 50, Threshold: 1},
	))
	m := NewInventoryMirror(gw, zerolog.Nop())

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", m.Len())
	}

	// Item 1 disappears from the ledger: it must disappear from the mirror.
	gw.setSnapshot(snapshotOf(domain.InventoryItem{ID: 2, Name: "Gadget", Stock: 9, Price: 50, Threshold: 1}))
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Get(1); ok {
		t.Error("expected item 1 to be gone after full replace")
	}
	if it, _ := m.Get(2); it.Stock != 9 {
		t.Errorf("expected stock 9, got %d", it.Stock)
	}
	if m.RefreshedAt().IsZero() {
		t.Error("expected refresh time to be recorded")
	}
}

func TestMirror_Refresh_MismatchedLengthsKeepsPrevious(t *testing.T) {
	gw := newStubGateway()
	gw.setSnapshot(snapshotOf(domain.InventoryItem{ID: 1, Name: "Widget", Stock: 5, Price: 100}))
	m := NewInventoryMirror(gw, zerolog.Nop())
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := snapshotOf(
		domain.InventoryItem{ID: 1, Name: "Widget", Stock: 0, Price: 100},
		domain.InventoryItem{ID: 2, Name: "Gadget", Stock: 3, Price: 10},
	)
	bad.Prices = bad.Prices[:1]
	gw.setSnapshot(bad)

	err := m.Refresh(context.Background())
	if !errors.Is(err, domain.ErrSync) {
		t.Fatalf("expected ErrSync, got %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected previous mirror retained, got %d items", m.Len())
	}
	if it, _ := m.Get(1); it.Stock != 5 {
		t.Errorf("expected stock 5 to be untouched, got %d", it.Stock)
	}
}

func TestMirror_Refresh_QueryFailureKeepsPrevious(t *testing.T) {
	gw := newStubGateway()
	gw.setSnapshot(snapshotOf(domain.InventoryItem{ID: 1, Name: "Widget", Stock: 5, Price: 100}))
	m := NewInventoryMirror(gw, zerolog.Nop())
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gw.itemsErr = domain.ErrRemoteUnavailable
	err := m.Refresh(context.Background())

	if !errors.Is(err, domain.ErrSync) {
		t.Errorf("expected ErrSync, got %v", err)
	}
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Errorf("expected cause to be preserved, got %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("expected previous mirror retained")
	}
}

func TestMirror_ConcurrentRefresh_LastResponseWins(t *testing.T) {
	first := snapshotOf(
		domain.InventoryItem{ID: 1, Name: "A1", Stock: 1},
		domain.InventoryItem{ID: 2, Name: "A2", Stock: 2},
	)
	second := snapshotOf(domain.InventoryItem{ID: 3, Name: "B3", Stock: 3})

	cases := []struct {
		name      string
		lastIsA   bool
		wantIDs   []uint64
		wantFirst string
	}{
		{"issued first, answered last", true, []uint64{1, 2}, "A1"},
		{"issued last, answered last", false, []uint64{3}, "B3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &blockingGateway{stubGateway: newStubGateway(), pending: make(chan chan domain.ItemSnapshot)}
			m := NewInventoryMirror(gw, zerolog.Nop())
			ctx := context.Background()

			doneA := make(chan error, 1)
			go func() { doneA <- m.Refresh(ctx) }()
			replyA := <-gw.pending

			doneB := make(chan error, 1)
			go func() { doneB <- m.Refresh(ctx) }()
			replyB := <-gw.pending

			if tc.lastIsA {
				replyB <- second
				if err := <-doneB; err != nil {
					t.Fatalf("refresh B: %v", err)
				}
				replyA <- first
				if err := <-doneA; err != nil {
					t.Fatalf("refresh A: %v", err)
				}
			} else {
				replyA <- first
				if err := <-doneA; err != nil {
					t.Fatalf("refresh A: %v", err)
				}
				replyB <- second
				if err := <-doneB; err != nil {
					t.Fatalf("refresh B: %v", err)
				}
			}

			items := m.Items()
			if len(items) != len(tc.wantIDs) {
				t.Fatalf("expected %d items (no merge), got %+v", len(tc.wantIDs), items)
			}
			for i, id := range tc.wantIDs {
				if items[i].ID != id {
					t.Fatalf("expected ids %v, got %+v", tc.wantIDs, items)
				}
			}
			if items[0].Name != tc.wantFirst {
				t.Errorf("expected %s, got %s", tc.wantFirst, items[0].Name)
			}
		})
	}
}

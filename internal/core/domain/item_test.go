package domain

import (
	"errors"
	"testing"
)

func TestItemSnapshot_Zip(t *testing.T) {
	snap := ItemSnapshot{
		IDs:        []uint64{1, 2},
		Names:      []string{"Widget", "Gadget"},
		Stocks:     []uint64{5, 0},
		Prices:     []uint64{100, 250},
		Thresholds: []uint64{2, 1},
	}

	items, err := snap.Zip()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	want := InventoryItem{ID: 2, Name: "Gadget", Stock: 0, Price: 250, Threshold: 1}
	if items[2] != want {
		t.Errorf("expected %+v, got %+v", want, items[2])
	}
}

func TestItemSnapshot_Zip_LengthMismatch(t *testing.T) {
	snap := ItemSnapshot{
		IDs:        []uint64{1, 2},
		Names:      []string{"Widget"},
		Stocks:     []uint64{5, 0},
		Prices:     []uint64{100, 250},
		Thresholds: []uint64{2, 1},
	}

	items, err := snap.Zip()
	if !errors.Is(err, ErrSync) {
		t.Fatalf("expected ErrSync, got %v", err)
	}
	if items != nil {
		t.Errorf("expected no items on mismatch")
	}
}

func TestItemSnapshot_Zip_DuplicateIDLaterWins(t *testing.T) {
	snap := ItemSnapshot{
		IDs:        []uint64{7, 7},
		Names:      []string{"old", "new"},
		Stocks:     []uint64{1, 2},
		Prices:     []uint64{1, 2},
		Thresholds: []uint64{0, 0},
	}

	items, err := snap.Zip()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[7].Name != "new" {
		t.Fatalf("expected later record to win, got %+v", items)
	}
}

func TestItemSnapshot_Zip_Empty(t *testing.T) {
	items, err := ItemSnapshot{}.Zip()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty mirror, got %d", len(items))
	}
}

func TestSortedItems(t *testing.T) {
	items := map[uint64]InventoryItem{3: {ID: 3}, 1: {ID: 1}, 2: {ID: 2}}
	got := SortedItems(items)
	for i, it := range got {
		if it.ID != uint64(i+1) {
			t.Fatalf("unexpected order: %+v", got)
		}
	}
}

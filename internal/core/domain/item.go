package domain

import (
	"fmt"
	"sort"
)

// InventoryItem is a single ledger inventory record. Prices are expressed in
// the smallest currency unit.
type InventoryItem struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Stock     uint64 `json:"stock"`
	Price     uint64 `json:"price"`
	Threshold uint64 `json:"threshold"`
}

// LowStock reports whether the item is at or under its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.Stock <= i.Threshold
}

// ItemSnapshot is the ledger's bulk inventory view: parallel sequences where
// position k across every slice describes the same item.
type ItemSnapshot struct {
	IDs        []uint64 `json:"ids"`
	Names      []string `json:"names"`
	Stocks     []uint64 `json:"stocks"`
	Prices     []uint64 `json:"prices"`
	Thresholds []uint64 `json:"thresholds"`
}

// Zip combines the parallel sequences into records keyed by id. It fails with
// ErrSync when the sequences disagree on length. A duplicated id keeps the
// record at the later position.
func (s ItemSnapshot) Zip() (map[uint64]InventoryItem, error) {
	n := len(s.IDs)
	if len(s.Names) != n || len(s.Stocks) != n || len(s.Prices) != n || len(s.Thresholds) != n {
		return nil, fmt.Errorf("%w: sequence lengths ids=%d names=%d stocks=%d prices=%d thresholds=%d",
			ErrSync, n, len(s.Names), len(s.Stocks), len(s.Prices), len(s.Thresholds))
	}

	items := make(map[uint64]InventoryItem, n)
	for k := 0; k < n; k++ {
		items[s.IDs[k]] = InventoryItem{
			ID:        s.IDs[k],
			Name:      s.Names[k],
			Stock:     s.Stocks[k],
			Price:     s.Prices[k],
			Threshold: s.Thresholds[k],
		}
	}
	return items, nil
}

// SortedItems returns the values of items ordered by id.
func SortedItems(items map[uint64]InventoryItem) []InventoryItem {
	out := make([]InventoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

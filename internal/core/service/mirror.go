package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
	"github.com/stockledger/inventory-client/internal/pkg/metrics"
)

// InventoryMirror is the session's local copy of ledger inventory. It is only
// ever replaced wholesale by Refresh; events never patch it.
type InventoryMirror struct {
	gateway ports.Gateway
	log     zerolog.Logger

	mu          sync.RWMutex
	items       map[uint64]domain.InventoryItem
	refreshedAt time.Time
}

func NewInventoryMirror(gateway ports.Gateway, log zerolog.Logger) *InventoryMirror {
	return &InventoryMirror{
		gateway: gateway,
		log:     log,
		items:   map[uint64]domain.InventoryItem{},
	}
}

// Refresh pulls the full inventory snapshot and replaces the mirror. On any
// failure the previous mirror is kept and an error wrapping domain.ErrSync is
// returned. Concurrent refreshes resolve by completion order: the last
// response to arrive is the one left visible.
func (m *InventoryMirror) Refresh(ctx context.Context) error {
	snap, err := m.gateway.QueryAllItems(ctx)
	if err != nil {
		metrics.MirrorRefreshTotal.WithLabelValues("error").Inc()
		m.log.Warn().Err(err).Msg("inventory query failed, keeping previous mirror")
		return fmt.Errorf("%w: query all items: %w", domain.ErrSync, err)
	}

	items, err := snap.Zip()
	if err != nil {
		metrics.MirrorRefreshTotal.WithLabelValues("error").Inc()
		m.log.Warn().Err(err).Msg("inconsistent inventory snapshot, keeping previous mirror")
		return err
	}

	m.mu.Lock()
	m.items = items
	m.refreshedAt = time.Now().UTC()
	m.mu.Unlock()

	metrics.MirrorRefreshTotal.WithLabelValues("ok").Inc()
	metrics.MirrorItems.Set(float64(len(items)))
	m.log.Debug().Int("items", len(items)).Msg("inventory mirror refreshed")
	return nil
}

// Get returns the mirrored record for id.
func (m *InventoryMirror) Get(id uint64) (domain.InventoryItem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	return it, ok
}

// Items returns the mirrored records ordered by id.
func (m *InventoryMirror) Items() []domain.InventoryItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.SortedItems(m.items)
}

func (m *InventoryMirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// RefreshedAt is the time of the last successful refresh, zero if none.
func (m *InventoryMirror) RefreshedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshedAt
}

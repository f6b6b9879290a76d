package service

import (
	"sync"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

// DefaultEventLogCapacity bounds the session event log. Smaller logs are
// allowed; larger ones are not.
const DefaultEventLogCapacity = 100

// EventLog is a bounded, arrival-ordered log of observed events. The most
// recent event is at the head; once the log is over capacity the oldest entry
// is evicted, regardless of kind.
type EventLog struct {
	mu       sync.Mutex
	capacity int
	entries  []domain.DomainEvent
}

// NewEventLog returns an empty log. A capacity outside 1..100 falls back to
// DefaultEventLogCapacity.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 || capacity > DefaultEventLogCapacity {
		capacity = DefaultEventLogCapacity
	}
	return &EventLog{
		capacity: capacity,
		entries:  make([]domain.DomainEvent, 0, capacity+1),
	}
}

// Insert puts ev at the head and evicts from the tail in one step. It returns
// the resulting log size.
func (l *EventLog) Insert(ev domain.DomainEvent) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, domain.DomainEvent{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = ev
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
	return len(l.entries)
}

// Entries returns up to limit entries, most recent first. A non-positive
// limit returns the whole log.
func (l *EventLog) Entries(limit int) []domain.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.DomainEvent, n)
	copy(out, l.entries[:n])
	return out
}

func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *EventLog) Capacity() int { return l.capacity }

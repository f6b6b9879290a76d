package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

// SessionOptions tunes a session. The zero value is valid.
type SessionOptions struct {
	EventLogCapacity int
	Dedup            EventDeduper
}

// Session is the explicit context every component works through: active
// account, role, pause state, inventory mirror and event log. Nothing is
// persisted; dropping the session is the whole teardown. Until Start succeeds
// the role is empty and the gate offers nothing.
type Session struct {
	gateway ports.Gateway
	log     zerolog.Logger

	resolver   *RoleResolver
	mirror     *InventoryMirror
	events     *EventLog
	dispatcher *Dispatcher
	aggregator *EventAggregator

	mu      sync.RWMutex
	account domain.Account
	role    domain.Role
	paused  bool

	stopEvents context.CancelFunc
	eventsDone chan struct{}
}

var _ ports.SessionService = (*Session)(nil)

func NewSession(gateway ports.Gateway, identity ports.IdentityProvider, log zerolog.Logger, opts SessionOptions) *Session {
	s := &Session{
		gateway: gateway,
		log:     log.With().Str("component", "session").Logger(),
		events:  NewEventLog(opts.EventLogCapacity),
	}
	s.resolver = NewRoleResolver(gateway, identity, log.With().Str("component", "resolver").Logger())
	s.mirror = NewInventoryMirror(gateway, log.With().Str("component", "mirror").Logger())
	s.dispatcher = newDispatcher(gateway, s, log.With().Str("component", "dispatcher").Logger())
	s.aggregator = NewEventAggregator(gateway, s.events, opts.Dedup, log.With().Str("component", "events").Logger())
	return s
}

// Start initialises the session in order: identity, role, pause state,
// mirror. Any failure aborts the start.
func (s *Session) Start(ctx context.Context) error {
	id, err := s.resolver.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	paused, err := s.gateway.QueryPaused(ctx)
	if err != nil {
		return fmt.Errorf("start session: query paused: %w", err)
	}

	s.mu.Lock()
	s.account = id.Account
	s.role = id.Role
	s.paused = paused
	s.mu.Unlock()

	if err := s.mirror.Refresh(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	s.log.Info().
		Str("account", id.Account.String()).
		Str("role", string(id.Role)).
		Bool("paused", paused).
		Int("items", s.mirror.Len()).
		Msg("session started")
	return nil
}

// StartEvents launches the event aggregator in the background. Close stops it.
func (s *Session) StartEvents(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.stopEvents = cancel
	s.eventsDone = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		_ = s.aggregator.Run(ctx)
	}()
}

// Close stops the event aggregator, if running, and waits for it.
func (s *Session) Close() {
	s.mu.Lock()
	stop, done := s.stopEvents, s.eventsDone
	s.stopEvents, s.eventsDone = nil, nil
	s.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
}

// RefreshRole re-resolves the active account's role and the pause state. It
// is the explicit answer to staff changes made by other sessions; events are
// not trusted for permissions.
func (s *Session) RefreshRole(ctx context.Context) error {
	role, err := s.resolver.RoleOf(ctx, s.Account())
	if err != nil {
		return fmt.Errorf("refresh role: %w", err)
	}

	s.mu.Lock()
	prev := s.role
	s.role = role
	s.mu.Unlock()

	if prev != role {
		s.log.Info().Str("from", string(prev)).Str("to", string(role)).Msg("role changed")
	}
	return s.refreshPaused(ctx)
}

func (s *Session) refreshPaused(ctx context.Context) error {
	paused, err := s.gateway.QueryPaused(ctx)
	if err != nil {
		return fmt.Errorf("refresh paused: %w", err)
	}
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
	return nil
}

// RefreshMirror is the manual re-trigger for a failed or stale mirror.
func (s *Session) RefreshMirror(ctx context.Context) error {
	return s.mirror.Refresh(ctx)
}

func (s *Session) Dispatch(ctx context.Context, req domain.Request) (*ports.DispatchResult, error) {
	return s.dispatcher.Dispatch(ctx, req)
}

func (s *Session) Account() domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

func (s *Session) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// Permitted evaluates the capability gate against the current role and pause
// state.
func (s *Session) Permitted() domain.CapabilitySet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Permitted(s.role, s.paused)
}

func (s *Session) State() ports.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ports.SessionState{
		Account:   s.account,
		Role:      s.role,
		Paused:    s.paused,
		Permitted: domain.Permitted(s.role, s.paused).List(),
	}
}

func (s *Session) Items() []domain.InventoryItem {
	return s.mirror.Items()
}

func (s *Session) Item(id uint64) (domain.InventoryItem, bool) {
	return s.mirror.Get(id)
}

func (s *Session) Events(limit int) []domain.DomainEvent {
	return s.events.Entries(limit)
}

// RefreshedAt is when the mirror was last replaced, zero before the first
// successful refresh.
func (s *Session) RefreshedAt() time.Time {
	return s.mirror.RefreshedAt()
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
	"github.com/stockledger/inventory-client/internal/pkg/metrics"
)

const sinkBuffer = 256

// EventDeduper drops redelivered events by their stable ledger reference.
// It is optional; without one every delivery is logged.
type EventDeduper interface {
	FirstSeen(ctx context.Context, ref string) (bool, error)
}

// EventAggregator runs one listener per event kind for the life of the
// session. Listeners feed a single sink that stamps each arrival and inserts
// it into the event log, so log order is arrival order.
type EventAggregator struct {
	gateway ports.Gateway
	events  *EventLog
	dedup   EventDeduper
	log     zerolog.Logger
	kinds   []domain.EventKind
	now     func() time.Time
}

func NewEventAggregator(gateway ports.Gateway, events *EventLog, dedup EventDeduper, log zerolog.Logger) *EventAggregator {
	return &EventAggregator{
		gateway: gateway,
		events:  events,
		dedup:   dedup,
		log:     log,
		kinds:   domain.EventKinds,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run subscribes to every kind and blocks until ctx is done or every stream
// has ended. A subscription that fails or ends is not restarted and does not
// affect the others.
func (a *EventAggregator) Run(ctx context.Context) error {
	sink := make(chan domain.LedgerEvent, sinkBuffer)

	var g errgroup.Group
	for _, kind := range a.kinds {
		g.Go(func() error {
			a.listen(ctx, kind, sink)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(sink)
	}()

	for ev := range sink {
		a.record(ctx, ev)
	}

	a.log.Info().Msg("event aggregator stopped")
	return ctx.Err()
}

func (a *EventAggregator) listen(ctx context.Context, kind domain.EventKind, sink chan<- domain.LedgerEvent) {
	stream, err := a.gateway.Subscribe(ctx, kind)
	if err != nil {
		a.log.Error().Err(err).Str("kind", string(kind)).Msg("subscribe failed")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-stream:
			if !ok {
				a.log.Warn().Str("kind", string(kind)).Msg("event stream ended")
				return
			}
			if ev.Kind == "" {
				ev.Kind = kind
			}
			select {
			case sink <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (a *EventAggregator) record(ctx context.Context, ev domain.LedgerEvent) {
	metrics.EventsReceivedTotal.WithLabelValues(string(ev.Kind)).Inc()

	if a.dedup != nil && ev.Ref != "" {
		first, err := a.dedup.FirstSeen(ctx, ev.Ref)
		if err != nil {
			a.log.Warn().Err(err).Str("ref", ev.Ref).Msg("dedup check failed, logging anyway")
		} else if !first {
			metrics.EventsDeduplicatedTotal.Inc()
			a.log.Debug().Str("ref", ev.Ref).Str("kind", string(ev.Kind)).Msg("redelivered event skipped")
			return
		}
	}

	stamped := domain.DomainEvent{
		ID:         uuid.NewString(),
		Kind:       ev.Kind,
		Payload:    ev.Payload,
		Ref:        ev.Ref,
		ReceivedAt: a.now(),
	}
	size := a.events.Insert(stamped)
	metrics.EventLogSize.Set(float64(size))

	a.log.Info().Str("kind", string(ev.Kind)).Str("event_id", stamped.ID).Msg(stamped.Message())
}

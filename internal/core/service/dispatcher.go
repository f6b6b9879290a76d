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

// Dispatcher executes mutating operations on behalf of the session's active
// account. It never retries a submission.
type Dispatcher struct {
	gateway ports.Gateway
	session *Session
	log     zerolog.Logger

	mu       sync.Mutex
	inflight map[uint64]struct{}
}

func newDispatcher(gateway ports.Gateway, session *Session, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		gateway:  gateway,
		session:  session,
		log:      log,
		inflight: make(map[uint64]struct{}),
	}
}

// Dispatch runs req through the capability gate, submits it, and on
// confirmation refreshes the mirror. The gate is consulted before arguments
// are checked. Gate rejections and argument errors are answered locally
// without contacting the gateway.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.Request) (*ports.DispatchResult, error) {
	capability, err := req.Capability()
	if err != nil {
		return nil, d.fail(req.Op, err, "invalid")
	}
	if !d.session.Permitted().Has(capability) {
		err := fmt.Errorf("%w: %s not offered to %s (paused=%v)",
			domain.ErrUnauthorized, capability, d.session.Role(), d.session.Paused())
		return nil, d.fail(req.Op, err, "gated")
	}

	if err := req.Validate(); err != nil {
		return nil, d.fail(req.Op, err, "invalid")
	}

	if req.TargetsItem() {
		if !d.acquire(req.ItemID) {
			return nil, d.fail(req.Op, fmt.Errorf("%w: item %d", domain.ErrItemBusy, req.ItemID), string(FailureBusy))
		}
		defer d.release(req.ItemID)
	}

	// The price is read from the mirror as it stands now. A stale price is the
	// ledger's to reject.
	var value uint64
	if req.Op == domain.OpPurchase {
		item, ok := d.session.mirror.Get(req.ItemID)
		if !ok {
			return nil, d.fail(req.Op, fmt.Errorf("%w: %d", domain.ErrUnknownItem, req.ItemID), "invalid")
		}
		v, err := domain.PurchaseValue(item.Price, req.Quantity)
		if err != nil {
			return nil, d.fail(req.Op, err, "invalid")
		}
		value = v
	}

	sub := ports.Submission{
		Op:    req.Op,
		Args:  req.Args(),
		From:  d.session.Account(),
		Value: value,
	}

	// Once submitted, an operation runs to completion regardless of the
	// caller going away.
	submitCtx := context.WithoutCancel(ctx)
	start := time.Now()
	receipt, err := d.gateway.Submit(submitCtx, sub)
	metrics.DispatchDuration.WithLabelValues(string(req.Op)).Observe(time.Since(start).Seconds())
	if err != nil {
		kind := classify(err)
		return nil, d.fail(req.Op, err, string(kind))
	}

	metrics.DispatchTotal.WithLabelValues(string(req.Op), "ok").Inc()
	d.log.Info().
		Str("op", string(req.Op)).
		Str("account", sub.From.String()).
		Uint64("value", value).
		Str("tx", txHash(receipt)).
		Msg("operation confirmed")

	result := &ports.DispatchResult{Op: req.Op, Value: value, Receipt: receipt}
	d.afterConfirm(submitCtx, req, result)
	return result, nil
}

// afterConfirm re-reads whatever authoritative state the confirmed operation
// may have changed. Failures here are reported on the result, never retried
// and never turned into a dispatch failure.
func (d *Dispatcher) afterConfirm(ctx context.Context, req domain.Request, result *ports.DispatchResult) {
	switch req.Op {
	case domain.OpUpdateStaff:
		if err := d.session.RefreshRole(ctx); err != nil {
			d.log.Warn().Err(err).Str("op", string(req.Op)).Msg("role refresh after staff update failed")
		}
	case domain.OpSetPaused:
		if err := d.session.refreshPaused(ctx); err != nil {
			d.log.Warn().Err(err).Str("op", string(req.Op)).Msg("pause refresh failed")
		}
	}

	if err := d.session.mirror.Refresh(ctx); err != nil {
		result.RefreshErr = err
		d.log.Warn().Err(err).Str("op", string(req.Op)).Msg("mirror refresh after confirmation failed")
	}
}

func (d *Dispatcher) fail(op domain.Operation, err error, result string) error {
	oe := &OperationError{Op: op, Kind: classify(err), Err: err}
	metrics.DispatchTotal.WithLabelValues(string(op), result).Inc()
	d.log.Warn().Err(err).Str("op", string(op)).Str("kind", string(oe.Kind)).Msg("operation failed")
	return oe
}

func (d *Dispatcher) acquire(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.inflight[id]; busy {
		return false
	}
	d.inflight[id] = struct{}{}
	return true
}

func (d *Dispatcher) release(id uint64) {
	d.mu.Lock()
	delete(d.inflight, id)
	d.mu.Unlock()
}

func txHash(r *ports.Receipt) string {
	if r == nil {
		return ""
	}
	return r.TxHash
}

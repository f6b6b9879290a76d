package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/stockledger/inventory-client/internal/core/domain"
)

const (
	streamBuffer = 16
	readLimit    = 1 << 20
)

type notification struct {
	Subscription string             `json:"subscription"`
	Result       domain.LedgerEvent `json:"result"`
}

// Subscribe opens a websocket for kind and streams its events until ctx is
// done or the node closes the stream. The returned channel is closed on exit.
func (c *Client) Subscribe(ctx context.Context, kind domain.EventKind) (<-chan domain.LedgerEvent, error) {
	conn, _, err := websocket.Dial(ctx, c.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: subscribe %s: %w", domain.ErrRemoteUnavailable, kind, err)
	}
	conn.SetReadLimit(readLimit)

	subID, err := c.handshake(ctx, conn, kind)
	if err != nil {
		_ = conn.CloseNow()
		return nil, err
	}

	out := make(chan domain.LedgerEvent, streamBuffer)
	go c.pump(ctx, conn, kind, subID, out)
	return out, nil
}

func (c *Client) handshake(ctx context.Context, conn *websocket.Conn, kind domain.EventKind) (string, error) {
	req := request{JSONRPC: "2.0", Method: methodSubscribe, Params: []any{string(kind)}, ID: uuid.NewString()}
	if err := wsjson.Write(ctx, conn, req); err != nil {
		return "", fmt.Errorf("%w: subscribe %s: %w", domain.ErrRemoteUnavailable, kind, err)
	}

	var ack response
	if err := wsjson.Read(ctx, conn, &ack); err != nil {
		return "", fmt.Errorf("%w: subscribe %s: read ack: %w", domain.ErrRemoteUnavailable, kind, err)
	}
	if ack.Error != nil {
		return "", mapError(ack.Error, false)
	}

	var id string
	if err := json.Unmarshal(ack.Result, &id); err != nil {
		return "", fmt.Errorf("%w: subscribe %s: decode ack: %w", domain.ErrRemoteUnavailable, kind, err)
	}
	return id, nil
}

func (c *Client) pump(ctx context.Context, conn *websocket.Conn, kind domain.EventKind, subID string, out chan<- domain.LedgerEvent) {
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "closed") }()
	defer close(out)

	log := c.log.With().Str("kind", string(kind)).Str("subscription", subID).Logger()
	log.Debug().Msg("subscribed")

	for {
		var msg response
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if ctx.Err() == nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				log.Warn().Err(err).Msg("subscription read failed")
			}
			return
		}
		if msg.Method != methodSubscription {
			continue
		}

		var n notification
		if err := json.Unmarshal(msg.Params, &n); err != nil {
			log.Warn().Err(err).Msg("malformed notification dropped")
			continue
		}
		if n.Subscription != "" && n.Subscription != subID {
			continue
		}

		select {
		case out <- n.Result:
		case <-ctx.Done():
			return
		}
	}
}

// Package rpc is the JSON-RPC adapter to the inventory ledger node. Calls go
// over HTTP; event subscriptions go over a websocket per event kind.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

const defaultTimeout = 20 * time.Second

const (
	methodOwner           = "inventory_owner"
	methodIsStaff         = "inventory_isStaff"
	methodPaused          = "inventory_paused"
	methodGetAllItems     = "inventory_getAllItems"
	methodSubmit          = "inventory_submit"
	methodRequestAccounts = "wallet_requestAccounts"
	methodSubscribe       = "inventory_subscribe"
	methodSubscription    = "inventory_subscription"
)

type Config struct {
	RPCURL  string
	WSURL   string
	Timeout time.Duration
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      string `json:"id"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
	ID      any             `json:"id"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Client talks to one ledger node. It implements ports.Gateway.
type Client struct {
	rpcURL string
	wsURL  string
	http   *http.Client
	log    zerolog.Logger
}

var _ ports.Gateway = (*Client)(nil)

func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		rpcURL: cfg.RPCURL,
		wsURL:  cfg.WSURL,
		http:   &http.Client{Timeout: timeout},
		log:    log,
	}
}

// call performs one JSON-RPC round trip. Transport failures and 5xx answers
// are remote unavailability; error objects are mapped by code.
func (c *Client) call(ctx context.Context, method string, write bool, out any, params ...any) error {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(request{JSONRPC: "2.0", Method: method, Params: params, ID: uuid.NewString()})
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrRemoteUnavailable, method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrRemoteUnavailable, method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("rpc call")

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s: http %d", domain.ErrRemoteUnavailable, method, resp.StatusCode)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("%w: %s: decode response: %w", domain.ErrRemoteUnavailable, method, err)
	}
	if r.Error != nil {
		return mapError(r.Error, write)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(r.Result, out); err != nil {
		return fmt.Errorf("%w: %s: decode result: %w", domain.ErrRemoteUnavailable, method, err)
	}
	return nil
}

func (c *Client) QueryOwner(ctx context.Context) (domain.Account, error) {
	var owner domain.Account
	if err := c.call(ctx, methodOwner, false, &owner); err != nil {
		return "", err
	}
	return owner, nil
}

func (c *Client) QueryStaff(ctx context.Context, account domain.Account) (bool, error) {
	var staff bool
	if err := c.call(ctx, methodIsStaff, false, &staff, account.String()); err != nil {
		return false, err
	}
	return staff, nil
}

func (c *Client) QueryPaused(ctx context.Context) (bool, error) {
	var paused bool
	if err := c.call(ctx, methodPaused, false, &paused); err != nil {
		return false, err
	}
	return paused, nil
}

func (c *Client) QueryAllItems(ctx context.Context) (domain.ItemSnapshot, error) {
	var snap domain.ItemSnapshot
	if err := c.call(ctx, methodGetAllItems, false, &snap); err != nil {
		return domain.ItemSnapshot{}, err
	}
	return snap, nil
}

// txParams is the wire shape of a submission. Value travels as a decimal
// string so it survives JSON number precision on the node side.
type txParams struct {
	Method string `json:"method"`
	Args   []any  `json:"args"`
	From   string `json:"from"`
	Value  string `json:"value,omitempty"`
}

// Submit sends the transaction and waits for the node to report it mined.
func (c *Client) Submit(ctx context.Context, sub ports.Submission) (*ports.Receipt, error) {
	p := txParams{
		Method: string(sub.Op),
		Args:   sub.Args,
		From:   sub.From.String(),
	}
	if p.Args == nil {
		p.Args = []any{}
	}
	if sub.Value > 0 {
		p.Value = strconv.FormatUint(sub.Value, 10)
	}

	var receipt ports.Receipt
	if err := c.call(ctx, methodSubmit, true, &receipt, p); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// RequestAccounts asks the wallet behind the node for its accounts.
func (c *Client) RequestAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := c.call(ctx, methodRequestAccounts, false, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

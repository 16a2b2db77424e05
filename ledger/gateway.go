// Package ledger reads stake-pledge state from a Stacks node: read-only
// contract calls, chain tip height, and the fetch wrappers views build on.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/clarity"
	"github.com/oderahub/stackpledge/types"
)

// Contract identifies the deployed stake-pledge contract.
type Contract struct {
	Address string
	Name    string
}

func (c Contract) ID() string { return c.Address + "." + c.Name }

// NodeError is returned when the node answers but refuses the request.
type NodeError struct {
	StatusCode int
	Path       string
	Cause      string
}

func (e *NodeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("node %s: status %d: %s", e.Path, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("node %s: %s", e.Path, e.Cause)
}

// IsNodeError checks whether err carries a NodeError and returns it.
func IsNodeError(err error) (*NodeError, bool) {
	var ne *NodeError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}

// CommitmentReader is the subset of the gateway the batch fetch needs.
type CommitmentReader interface {
	GetCommitment(ctx context.Context, id uint64) (*types.Commitment, error)
	GetTotalCommitments(ctx context.Context) (uint64, error)
}

// HeightSource reports the current chain tip.
type HeightSource interface {
	GetCurrentBlockHeight(ctx context.Context) (int64, error)
}

// Gateway issues one-shot queries against the node API. It never retries
// and never caches.
type Gateway struct {
	baseURL    string
	contract   Contract
	httpClient *http.Client
	logger     log.Logger
}

var (
	_ CommitmentReader = (*Gateway)(nil)
	_ HeightSource     = (*Gateway)(nil)
)

type Option func(*Gateway)

func WithHTTPClient(h *http.Client) Option {
	return func(g *Gateway) { g.httpClient = h }
}

func WithLogger(l log.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

func NewGateway(baseURL string, contract Contract, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		contract:   contract,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("module", "ledger")
	return g
}

func (g *Gateway) Contract() Contract { return g.contract }

// GetCommitment returns nil, nil when the contract has no record for id.
func (g *Gateway) GetCommitment(ctx context.Context, id uint64) (*types.Commitment, error) {
	v, err := g.callReadOnly(ctx, "get-commitment", clarity.NewUInt(id))
	if err != nil {
		return nil, err
	}
	return unwrapOptional(v, func(inner clarity.Value) (types.Commitment, error) {
		return decodeCommitment(inner, id)
	})
}

// GetUserStats returns nil, nil for an address that never pledged.
func (g *Gateway) GetUserStats(ctx context.Context, address string) (*types.UserStats, error) {
	p, err := clarity.ParsePrincipal(address)
	if err != nil {
		return nil, err
	}
	v, err := g.callReadOnly(ctx, "get-user-stats", p)
	if err != nil {
		return nil, err
	}
	return unwrapOptional(v, decodeUserStats)
}

func (g *Gateway) GetGlobalStats(ctx context.Context) (types.GlobalStats, error) {
	v, err := g.callReadOnly(ctx, "get-global-stats")
	if err != nil {
		return types.GlobalStats{}, err
	}
	return decodeGlobalStats(unwrapResponse(v))
}

func (g *Gateway) GetTotalCommitments(ctx context.Context) (uint64, error) {
	v, err := g.callReadOnly(ctx, "get-total-commitments")
	if err != nil {
		return 0, err
	}
	return asUint(unwrapResponse(v), "total")
}

type nodeInfo struct {
	StacksTipHeight *int64 `json:"stacks_tip_height"`
}

// GetCurrentBlockHeight reads the tip height from the node-info endpoint.
func (g *Gateway) GetCurrentBlockHeight(ctx context.Context) (int64, error) {
	var info nodeInfo
	if err := g.do(ctx, http.MethodGet, "/v2/info", nil, &info); err != nil {
		return 0, err
	}
	if info.StacksTipHeight == nil {
		return 0, fmt.Errorf("%w: node info without stacks_tip_height", ErrUnexpectedShape)
	}
	return *info.StacksTipHeight, nil
}

type callReadRequest struct {
	Sender    string   `json:"sender"`
	Arguments []string `json:"arguments"`
}

type callReadResponse struct {
	Okay   bool   `json:"okay"`
	Result string `json:"result"`
	Cause  string `json:"cause"`
}

func (g *Gateway) callReadOnly(ctx context.Context, fn string, args ...clarity.Value) (clarity.Value, error) {
	req := callReadRequest{Sender: g.contract.Address, Arguments: make([]string, 0, len(args))}
	for _, a := range args {
		h, err := clarity.SerializeHex(a)
		if err != nil {
			return nil, fmt.Errorf("encode %s argument: %w", fn, err)
		}
		req.Arguments = append(req.Arguments, h)
	}

	path := "/v2/contracts/call-read/" + url.PathEscape(g.contract.Address) + "/" +
		url.PathEscape(g.contract.Name) + "/" + url.PathEscape(fn)

	var resp callReadResponse
	if err := g.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Okay {
		return nil, &NodeError{Path: path, Cause: resp.Cause}
	}
	v, err := clarity.DeserializeHex(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("decode %s result: %w", fn, err)
	}
	g.logger.Debug("read-only call", "fn", fn, "type", v.Type().String())
	return v, nil
}

func (g *Gateway) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("node %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NodeError{StatusCode: resp.StatusCode, Path: path, Cause: strings.TrimSpace(string(payload))}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("node %s: decode json: %w", path, err)
	}
	return nil
}

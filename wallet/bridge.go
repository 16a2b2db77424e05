package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/identity"
)

// BridgeSigner talks to a local wallet bridge over HTTP. The bridge shows the
// signing prompt to the user and answers once they decide.
type BridgeSigner struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

var (
	_ Signer             = (*BridgeSigner)(nil)
	_ identity.Connector = (*BridgeSigner)(nil)
)

type BridgeOption func(*BridgeSigner)

func WithHTTPClient(h *http.Client) BridgeOption {
	return func(b *BridgeSigner) { b.httpClient = h }
}

func WithLogger(l log.Logger) BridgeOption {
	return func(b *BridgeSigner) { b.logger = l }
}

func NewBridgeSigner(baseURL string, opts ...BridgeOption) *BridgeSigner {
	b := &BridgeSigner{
		baseURL: strings.TrimRight(baseURL, "/"),
		// The user may take a while to answer the prompt.
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("module", "wallet")
	return b
}

type addressesResponse struct {
	Addresses []identity.Entry `json:"addresses"`
}

// Addresses implements identity.Connector.
func (b *BridgeSigner) Addresses(ctx context.Context) ([]identity.Entry, error) {
	var resp addressesResponse
	if err := b.do(ctx, http.MethodGet, "/v1/addresses", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Addresses, nil
}

type contractCallRequest struct {
	RequestID         string   `json:"request_id"`
	Network           string   `json:"network"`
	ContractAddress   string   `json:"contract_address"`
	ContractName      string   `json:"contract_name"`
	FunctionName      string   `json:"function_name"`
	FunctionArgs      []string `json:"function_args"`
	PostConditionMode string   `json:"post_condition_mode"`
}

type contractCallResponse struct {
	TxID      string `json:"txid"`
	Cancelled bool   `json:"cancelled"`
	Error     string `json:"error"`
}

// Sign implements Signer.
func (b *BridgeSigner) Sign(ctx context.Context, call ContractCall) SignResult {
	args, err := call.HexArgs()
	if err != nil {
		return FailedResult(err)
	}
	req := contractCallRequest{
		RequestID:         uuid.NewString(),
		Network:           call.Network,
		ContractAddress:   call.ContractAddress,
		ContractName:      call.ContractName,
		FunctionName:      call.Function,
		FunctionArgs:      args,
		PostConditionMode: call.PostConditionMode.String(),
	}
	b.logger.Debug("contract call", "request_id", req.RequestID, "fn", call.Function)

	var resp contractCallResponse
	if err := b.do(ctx, http.MethodPost, "/v1/contract-call", req.RequestID, req, &resp); err != nil {
		return FailedResult(err)
	}
	switch {
	case resp.Cancelled:
		b.logger.Info("signing cancelled", "request_id", req.RequestID)
		return CancelledResult()
	case resp.Error != "":
		return FailedResult(errors.New(resp.Error))
	case resp.TxID == "":
		return FailedResult(errors.New("wallet bridge returned no transaction id"))
	}
	b.logger.Info("transaction broadcast", "request_id", req.RequestID, "txid", resp.TxID)
	return BroadcastResult(resp.TxID)
}

func (b *BridgeSigner) do(ctx context.Context, method, path, requestID string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID != "" {
		req.Header.Set("Idempotency-Key", requestID)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wallet bridge %s: %w", path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("wallet bridge %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e contractCallResponse
		if json.Unmarshal(payload, &e) == nil && e.Error != "" {
			return fmt.Errorf("wallet bridge %s: %s", path, e.Error)
		}
		return fmt.Errorf("wallet bridge %s: status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("wallet bridge %s: decode json: %w", path, err)
	}
	return nil
}

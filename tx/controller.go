// Package tx drives the submit / track lifecycle of the three mutating
// contract calls. Each Controller belongs to one call site.
package tx

import (
	"context"
	"sync"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/wallet"
)

type Phase uint8

const (
	Idle Phase = iota
	Submitting
	Confirmed
	Cancelled
	Failed
)

var phaseNames = [...]string{"idle", "submitting", "confirmed", "cancelled", "failed"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// CancelledMessage is the error text after the user declines to sign.
const CancelledMessage = "Transaction cancelled"

// State is what the call site renders. Once settled, at most one of Err and
// TxID is set and Loading is false.
type State struct {
	Phase   Phase  `json:"phase"`
	Loading bool   `json:"loading"`
	Err     string `json:"error,omitempty"`
	TxID    string `json:"txid,omitempty"`
}

// BuildFunc turns call parameters into the contract call to sign.
type BuildFunc[P any] func(P) (wallet.ContractCall, error)

// Controller runs one kind of contract call. It does not guard against
// concurrent Execute calls; the caller keeps the trigger disabled while
// Loading is true.
type Controller[P any] struct {
	signer    wallet.Signer
	build     BuildFunc[P]
	fallback  string
	onSuccess func(txID string)
	logger    log.Logger

	mtx   sync.Mutex
	state State
}

// NewController wires a builder to a signer. fallback is the error text for
// failures that carry no message; onSuccess may be nil.
func NewController[P any](signer wallet.Signer, build BuildFunc[P], fallback string, onSuccess func(txID string), logger log.Logger) *Controller[P] {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Controller[P]{
		signer:    signer,
		build:     build,
		fallback:  fallback,
		onSuccess: onSuccess,
		logger:    logger.With("module", "tx"),
	}
}

// Execute builds, signs and broadcasts one call and returns the settled state.
func (c *Controller[P]) Execute(ctx context.Context, params P) State {
	c.set(State{Phase: Submitting, Loading: true})

	call, err := c.build(params)
	if err != nil {
		return c.fail(err)
	}

	res := c.signer.Sign(ctx, call)
	switch res.Outcome {
	case wallet.Broadcast:
		st := c.set(State{Phase: Confirmed, TxID: res.TxID})
		c.logger.Info("transaction broadcast", "fn", call.Function, "txid", res.TxID)
		if c.onSuccess != nil {
			c.onSuccess(res.TxID)
		}
		return st
	case wallet.Cancelled:
		c.logger.Info("transaction cancelled", "fn", call.Function)
		return c.set(State{Phase: Cancelled, Err: CancelledMessage})
	default:
		return c.fail(res.Err)
	}
}

// State returns the latest snapshot.
func (c *Controller[P]) State() State {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.state
}

func (c *Controller[P]) fail(err error) State {
	msg := c.fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	c.logger.Error("transaction failed", "err", msg)
	return c.set(State{Phase: Failed, Err: msg})
}

func (c *Controller[P]) set(st State) State {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.state = st
	return st
}

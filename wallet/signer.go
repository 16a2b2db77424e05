// Package wallet is the boundary to whatever holds the user's keys. Signing
// is a single awaited call with three possible outcomes.
package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/oderahub/stackpledge/clarity"
)

// PostConditionMode controls whether the signed transaction may move assets
// beyond its declared post-conditions.
type PostConditionMode uint8

const (
	PostConditionDeny PostConditionMode = iota
	PostConditionAllow
)

func (m PostConditionMode) String() string {
	if m == PostConditionAllow {
		return "allow"
	}
	return "deny"
}

// ContractCall is an unsigned public-function call on a contract.
type ContractCall struct {
	ContractAddress   string
	ContractName      string
	Function          string
	Args              []clarity.Value
	PostConditionMode PostConditionMode
	Network           string
}

// HexArgs serializes Args the way the node and wallets expect them.
func (c ContractCall) HexArgs() ([]string, error) {
	out := make([]string, 0, len(c.Args))
	for i, a := range c.Args {
		h, err := clarity.SerializeHex(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// Summary is a one-line human description of the call.
func (c ContractCall) Summary() string {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, describe(a))
	}
	return fmt.Sprintf("%s.%s::%s(%s)", c.ContractAddress, c.ContractName, c.Function, strings.Join(args, ", "))
}

func describe(v clarity.Value) string {
	switch x := v.(type) {
	case clarity.UInt:
		return "u" + x.V.String()
	case clarity.Int:
		return x.V.String()
	case clarity.Bool:
		return fmt.Sprintf("%t", bool(x))
	case clarity.StringUTF8:
		return fmt.Sprintf("u%q", string(x))
	case clarity.StringASCII:
		return fmt.Sprintf("%q", string(x))
	case clarity.StandardPrincipal:
		return "'" + x.String()
	case clarity.ContractPrincipal:
		return "'" + x.String()
	}
	return v.Type().String()
}

type Outcome uint8

const (
	// Broadcast means the wallet handed the transaction to the network. It
	// says nothing about on-chain finality.
	Broadcast Outcome = iota + 1
	// Cancelled means the user declined the signing prompt.
	Cancelled
	// Failed means nothing was broadcast.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Broadcast:
		return "broadcast"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// SignResult carries TxID for Broadcast and Err for Failed.
type SignResult struct {
	Outcome Outcome
	TxID    string
	Err     error
}

func BroadcastResult(txID string) SignResult { return SignResult{Outcome: Broadcast, TxID: txID} }

func CancelledResult() SignResult { return SignResult{Outcome: Cancelled} }

func FailedResult(err error) SignResult { return SignResult{Outcome: Failed, Err: err} }

// Signer asks the wallet to sign and broadcast a contract call.
type Signer interface {
	Sign(ctx context.Context, call ContractCall) SignResult
}

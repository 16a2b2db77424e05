package tx

import (
	"github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/clarity"
	"github.com/oderahub/stackpledge/ledger"
	"github.com/oderahub/stackpledge/units"
	"github.com/oderahub/stackpledge/wallet"
)

// Target is where calls are sent and who signs them.
type Target struct {
	Contract ledger.Contract
	Network  string
	Signer   wallet.Signer
	Logger   log.Logger
}

func (t Target) call(fn string, mode wallet.PostConditionMode, args ...clarity.Value) wallet.ContractCall {
	return wallet.ContractCall{
		ContractAddress:   t.Contract.Address,
		ContractName:      t.Contract.Name,
		Function:          fn,
		Args:              args,
		PostConditionMode: mode,
		Network:           t.Network,
	}
}

type PledgeParams struct {
	Description  string
	Judge        string
	DeadlineDays uint64
	StakeAmount  uint64 // µSTX
}

type JudgeParams struct {
	CommitmentID uint64
	Success      bool
}

type ClaimParams struct {
	CommitmentID uint64
}

// NewPledge sends (pledge description judge deadline-blocks stake). The stake
// transfer needs post-condition mode allow.
func NewPledge(t Target, onSuccess func(txID string)) *Controller[PledgeParams] {
	build := func(p PledgeParams) (wallet.ContractCall, error) {
		judge, err := clarity.ParsePrincipal(p.Judge)
		if err != nil {
			return wallet.ContractCall{}, err
		}
		return t.call("pledge", wallet.PostConditionAllow,
			clarity.StringUTF8(p.Description),
			judge,
			clarity.NewUInt(units.DaysToBlocks(p.DeadlineDays)),
			clarity.NewUInt(p.StakeAmount),
		), nil
	}
	return NewController[PledgeParams](t.Signer, build, "Failed to create pledge", onSuccess, t.Logger)
}

func NewJudge(t Target, onSuccess func(txID string)) *Controller[JudgeParams] {
	build := func(p JudgeParams) (wallet.ContractCall, error) {
		return t.call("judge-commitment", wallet.PostConditionDeny,
			clarity.NewUInt(p.CommitmentID), clarity.Bool(p.Success)), nil
	}
	return NewController[JudgeParams](t.Signer, build, "Failed to judge commitment", onSuccess, t.Logger)
}

func NewClaim(t Target, onSuccess func(txID string)) *Controller[ClaimParams] {
	build := func(p ClaimParams) (wallet.ContractCall, error) {
		return t.call("claim-stake", wallet.PostConditionDeny, clarity.NewUInt(p.CommitmentID)), nil
	}
	return NewController[ClaimParams](t.Signer, build, "Failed to claim stake", onSuccess, t.Logger)
}

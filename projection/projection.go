// Package projection derives what a viewer may do with a commitment from the
// record, the chain tip height, and the connected address. Everything here is
// a pure function of its inputs.
package projection

import (
	"fmt"

	"github.com/oderahub/stackpledge/types"
	"github.com/oderahub/stackpledge/units"
)

// View is the read-side projection of one commitment for one viewer.
type View struct {
	BlocksRemaining int64 `json:"blocks_remaining"`
	HasRemaining    bool  `json:"has_remaining"`
	IsExpired       bool  `json:"is_expired"`
	IsCreator       bool  `json:"is_creator"`
	IsJudge         bool  `json:"is_judge"`
	MayJudge        bool  `json:"may_judge"`
	MayClaim        bool  `json:"may_claim"`
}

// Project computes the View. haveHeight is false while the tip height is not
// yet known; identity is "" when no wallet is connected.
func Project(c types.Commitment, height int64, haveHeight bool, identity string) View {
	var v View
	if haveHeight {
		v.BlocksRemaining = c.DeadlineBlock - height
		v.HasRemaining = true
		v.IsExpired = v.BlocksRemaining <= 0
	}
	if identity != "" {
		v.IsCreator = identity == c.Creator
		v.IsJudge = identity == c.Judge
	}
	v.MayJudge = v.IsJudge && v.IsExpired && c.Status == types.StatusActive
	v.MayClaim = v.IsCreator && c.Status == types.StatusSuccess
	return v
}

// Deadline renders the deadline relative to the tip, or the absolute block
// when the tip is unknown.
func (v View) Deadline(c types.Commitment) string {
	if !v.HasRemaining {
		return "Block " + units.FormatBlock(c.DeadlineBlock)
	}
	if v.IsExpired {
		remaining := v.BlocksRemaining
		if remaining < 0 {
			remaining = -remaining
		}
		return fmt.Sprintf("Expired %s ago", units.BlocksToDuration(remaining))
	}
	return units.BlocksToDuration(v.BlocksRemaining) + " remaining"
}

// Notice is the status line shown under a commitment, "" when there is none.
func (v View) Notice(c types.Commitment) string {
	switch c.Status {
	case types.StatusActive:
		if !v.IsExpired {
			return "This commitment is active. The judge can provide a verdict after the deadline."
		}
		if !v.IsJudge {
			return "The deadline has passed. Waiting for the judge to provide a verdict."
		}
	case types.StatusFailed:
		return fmt.Sprintf("This commitment was marked as failed. The stake of %s STX has been burned.",
			units.ToDisplayAmount(c.StakeAmount))
	case types.StatusClaimed:
		return "This commitment was successful and the stake has been claimed."
	}
	return ""
}

package tx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/oderahub/stackpledge/clarity"
	"github.com/oderahub/stackpledge/types"
	"github.com/oderahub/stackpledge/units"
)

// MaxDescription is the contract's limit on description length.
const MaxDescription = 256

// ValidationError rejects form input before anything is sent.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

// PledgeForm is the raw text a user typed.
type PledgeForm struct {
	Description  string
	Judge        string
	DeadlineDays string
	Stake        string // STX
}

// ParsePledgeForm validates the form in field order and returns the first
// problem found.
func ParsePledgeForm(f PledgeForm, network types.Network) (PledgeParams, error) {
	var p PledgeParams

	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		return p, invalid("description", "Description is required")
	}
	if utf8.RuneCountInString(desc) > MaxDescription {
		return p, invalid("description", fmt.Sprintf("Description must be %d characters or less", MaxDescription))
	}

	judge := strings.TrimSpace(f.Judge)
	if judge == "" {
		return p, invalid("judge", "Judge address is required")
	}
	if !hasAnyPrefix(judge, network.AccountPrefixes) {
		return p, invalid("judge", fmt.Sprintf("Invalid Stacks address (must start with %s)",
			strings.Join(network.AccountPrefixes, " or ")))
	}
	if _, err := clarity.ParsePrincipal(judge); err != nil {
		return p, invalid("judge", "Invalid Stacks address (bad checksum)")
	}

	days, err := strconv.ParseUint(strings.TrimSpace(f.DeadlineDays), 10, 32)
	if err != nil || days < 1 {
		return p, invalid("deadline", "Deadline must be at least 1 day")
	}

	stake, err := units.ParseDisplayAmount(f.Stake)
	if err != nil {
		return p, invalid("stake", "Invalid stake amount")
	}
	if stake < units.MinStake {
		return p, invalid("stake", fmt.Sprintf("Minimum stake is %s STX", units.ToDisplayAmount(units.MinStake)))
	}

	p.Description = desc
	p.Judge = judge
	p.DeadlineDays = days
	p.StakeAmount = stake
	return p, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, pfx := range prefixes {
		if strings.HasPrefix(s, pfx) {
			return true
		}
	}
	return false
}

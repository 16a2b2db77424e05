// Package types holds the read-side records of the stake-pledge contract. The
// contract is the source of truth; these are what the node returned.
package types

// Status mirrors the contract's numeric status codes exactly.
type Status uint8

const (
	StatusActive  Status = 1
	StatusSuccess Status = 2
	StatusFailed  Status = 3
	StatusClaimed Status = 4
)

var statusLabels = map[Status]string{
	StatusActive:  "Active",
	StatusSuccess: "Success",
	StatusFailed:  "Failed",
	StatusClaimed: "Claimed",
}

func (s Status) String() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// Valid reports whether s is one of the four codes the contract emits.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusFailed || s == StatusClaimed
}

type Commitment struct {
	ID            uint64 `json:"id"`
	Creator       string `json:"creator"`
	Judge         string `json:"judge"`
	Description   string `json:"description"`
	StakeAmount   uint64 `json:"stake_amount"` // µSTX
	DeadlineBlock int64  `json:"deadline_block"`
	Status        Status `json:"status"`
}

type UserStats struct {
	TotalCommitments      uint64 `json:"total_commitments"`
	SuccessfulCommitments uint64 `json:"successful_commitments"`
	FailedCommitments     uint64 `json:"failed_commitments"`
	TotalStaked           uint64 `json:"total_staked"`
}

type GlobalStats struct {
	TotalCommitments uint64 `json:"total_commitments"`
	TotalStaked      uint64 `json:"total_staked"`
	TotalBurned      uint64 `json:"total_burned"` // sum of failed stakes
}

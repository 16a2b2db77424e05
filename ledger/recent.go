package ledger

import (
	"context"
	"fmt"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/types"
)

// DefaultRecent is how many commitments the dashboard lists.
const DefaultRecent = 10

// RecentIDs lists the newest n ids counting down from total, never below 1.
func RecentIDs(total uint64, n int) []uint64 {
	if n <= 0 || total == 0 {
		return nil
	}
	count := uint64(n)
	if count > total {
		count = total
	}
	ids := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		ids = append(ids, total-i)
	}
	return ids
}

type fetchResult struct {
	idx        int
	commitment *types.Commitment
	err        error
}

// RecentCommitments fetches the newest n commitments concurrently. Ids that
// fail or do not exist are left out; only a failure to read the total count
// fails the call. Results come back newest first.
func RecentCommitments(ctx context.Context, r CommitmentReader, n int, logger log.Logger) ([]types.Commitment, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	total, err := r.GetTotalCommitments(ctx)
	if err != nil {
		return nil, fmt.Errorf("get total commitments: %w", err)
	}
	ids := RecentIDs(total, n)

	results := make(chan fetchResult)
	for i, id := range ids {
		go func(i int, id uint64) {
			c, err := r.GetCommitment(ctx, id)
			results <- fetchResult{idx: i, commitment: c, err: err}
		}(i, id)
	}

	slots := make([]*types.Commitment, len(ids))
	for range ids {
		res := <-results
		if res.err != nil {
			logger.Error("skip commitment", "id", ids[res.idx], "err", res.err)
			continue
		}
		slots[res.idx] = res.commitment
	}

	out := make([]types.Commitment, 0, len(ids))
	for _, c := range slots {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

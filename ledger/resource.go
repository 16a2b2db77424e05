package ledger

import (
	"context"
	"sync"

	"github.com/oderahub/stackpledge/types"
)

// State is the loading / error / value triple a view renders.
type State[T any] struct {
	Value    T
	HasValue bool
	Loading  bool
	Err      string
}

// Fetcher performs one query.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Resource wraps a Fetcher with loading and error state. The previous value
// stays visible while a refetch is loading, and a fetch that has been
// superseded by a newer Refetch is dropped when it finishes.
type Resource[T any] struct {
	mtx      sync.Mutex
	fetch    Fetcher[T]
	fallback string
	state    State[T]
	gen      uint64
}

// NewResource builds a resource; fallback is the message used for errors
// that carry none.
func NewResource[T any](fetch Fetcher[T], fallback string) *Resource[T] {
	return &Resource[T]{fetch: fetch, fallback: fallback}
}

// Refetch runs the query and returns the resulting state.
func (r *Resource[T]) Refetch(ctx context.Context) State[T] {
	r.mtx.Lock()
	r.gen++
	gen := r.gen
	r.state.Loading = true
	r.state.Err = ""
	r.mtx.Unlock()

	v, err := r.fetch(ctx)

	r.mtx.Lock()
	defer r.mtx.Unlock()
	if gen != r.gen {
		return r.state
	}
	r.state.Loading = false
	if err != nil {
		r.state.Err = err.Error()
		if r.state.Err == "" {
			r.state.Err = r.fallback
		}
		return r.state
	}
	r.state.Value = v
	r.state.HasValue = true
	return r.state
}

// State returns the current snapshot without fetching.
func (r *Resource[T]) State() State[T] {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.state
}

// Invalidate drops any in-flight fetch result, e.g. when the view moves to
// another record.
func (r *Resource[T]) Invalidate() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.gen++
	r.state.Loading = false
}

// CommitmentResource fetches one commitment. A settled state with
// HasValue and a nil Value means the id does not exist.
func CommitmentResource(g *Gateway, id uint64) *Resource[*types.Commitment] {
	return NewResource[*types.Commitment](func(ctx context.Context) (*types.Commitment, error) {
		return g.GetCommitment(ctx, id)
	}, "Failed to fetch commitment")
}

func UserStatsResource(g *Gateway, address string) *Resource[*types.UserStats] {
	return NewResource[*types.UserStats](func(ctx context.Context) (*types.UserStats, error) {
		return g.GetUserStats(ctx, address)
	}, "Failed to fetch user stats")
}

func GlobalStatsResource(g *Gateway) *Resource[types.GlobalStats] {
	return NewResource[types.GlobalStats](g.GetGlobalStats, "Failed to fetch global stats")
}

// Package api serves the read side over JSON: stats, commitments with their
// projection for a viewer, and the chain tip height.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/clarity"
	"github.com/oderahub/stackpledge/ledger"
	"github.com/oderahub/stackpledge/projection"
	"github.com/oderahub/stackpledge/types"
	"github.com/oderahub/stackpledge/units"
)

// Ledger is the read surface the server needs; *ledger.Gateway satisfies it.
type Ledger interface {
	ledger.CommitmentReader
	ledger.HeightSource
	GetUserStats(ctx context.Context, address string) (*types.UserStats, error)
	GetGlobalStats(ctx context.Context) (types.GlobalStats, error)
}

var _ Ledger = (*ledger.Gateway)(nil)

const maxLimit = 50

type Server struct {
	ledger   Ledger
	heights  *ledger.HeightSubscription
	explorer projection.Explorer
	logger   log.Logger
}

type Option func(*Server)

// WithHeights serves heights from a watcher subscription instead of asking
// the node on every request.
func WithHeights(sub *ledger.HeightSubscription) Option {
	return func(s *Server) { s.heights = sub }
}

func WithExplorer(e projection.Explorer) Option {
	return func(s *Server) { s.explorer = e }
}

func WithLogger(l log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func NewServer(l Ledger, opts ...Option) *Server {
	s := &Server{ledger: l, logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "api")
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/height", s.getHeight)
	r.Route("/stats", func(r chi.Router) {
		r.Get("/", s.getGlobalStats)
		r.Get("/{address}", s.getUserStats)
	})
	r.Route("/commitments", func(r chi.Router) {
		r.Get("/", s.listRecent)
		r.Get("/{id}", s.getCommitment)
	})
	return r
}

func (s *Server) height(ctx context.Context) (int64, bool, error) {
	if s.heights != nil {
		if h, ok := s.heights.Height(); ok {
			return h, true, nil
		}
	}
	h, err := s.ledger.GetCurrentBlockHeight(ctx)
	if err != nil {
		return 0, false, err
	}
	return h, true, nil
}

func (s *Server) getHeight(w http.ResponseWriter, r *http.Request) {
	h, _, err := s.height(r.Context())
	if err != nil {
		s.fetchFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"height": h})
}

func (s *Server) getGlobalStats(w http.ResponseWriter, r *http.Request) {
	gs, err := s.ledger.GetGlobalStats(r.Context())
	if err != nil {
		s.fetchFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":          gs,
		"staked_display": units.ToDisplayAmount(gs.TotalStaked),
		"burned_display": units.ToDisplayAmount(gs.TotalBurned),
	})
}

func (s *Server) getUserStats(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if _, err := clarity.ParsePrincipal(address); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_ADDRESS", err.Error())
		return
	}
	us, err := s.ledger.GetUserStats(r.Context(), address)
	if err != nil {
		s.fetchFailed(w, err)
		return
	}
	if us == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"address":        address,
		"stats":          us,
		"staked_display": units.ToDisplayAmount(us.TotalStaked),
	})
}

func (s *Server) listRecent(w http.ResponseWriter, r *http.Request) {
	limit := ledger.DefaultRecent
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			writeError(w, http.StatusBadRequest, "BAD_LIMIT", "limit must be between 1 and "+strconv.Itoa(maxLimit))
			return
		}
		limit = n
	}
	list, err := ledger.RecentCommitments(r.Context(), s.ledger, limit, s.logger)
	if err != nil {
		s.fetchFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"commitments": list})
}

type commitmentResponse struct {
	Commitment   types.Commitment `json:"commitment"`
	StatusLabel  string           `json:"status_label"`
	StakeDisplay string           `json:"stake_display"`
	View         projection.View  `json:"view"`
	Deadline     string           `json:"deadline"`
	Notice       string           `json:"notice,omitempty"`
	CreatorURL   string           `json:"creator_url,omitempty"`
	JudgeURL     string           `json:"judge_url,omitempty"`
}

func (s *Server) getCommitment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "BAD_ID", "commitment id must be a positive integer")
		return
	}
	c, err := s.ledger.GetCommitment(r.Context(), id)
	if err != nil {
		s.fetchFailed(w, err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
		return
	}

	h, haveHeight, err := s.height(r.Context())
	if err != nil {
		s.logger.Error("fetch block height", "err", err)
	}
	view := projection.Project(*c, h, haveHeight, r.URL.Query().Get("viewer"))

	resp := commitmentResponse{
		Commitment:   *c,
		StatusLabel:  c.Status.String(),
		StakeDisplay: units.ToDisplayAmount(c.StakeAmount),
		View:         view,
		Deadline:     view.Deadline(*c),
		Notice:       view.Notice(*c),
	}
	if s.explorer.Network != "" {
		resp.CreatorURL = s.explorer.AddressURL(c.Creator)
		resp.JudgeURL = s.explorer.AddressURL(c.Judge)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) fetchFailed(w http.ResponseWriter, err error) {
	s.logger.Error("ledger query failed", "err", err)
	if errors.Is(err, context.Canceled) {
		return
	}
	writeError(w, http.StatusBadGateway, "LEDGER_UNAVAILABLE", err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"request_id": "req_" + uuid.NewString(),
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/types"
)

var (
	ErrNotConnected = errors.New("wallet not connected")
	ErrNoAddress    = errors.New("wallet returned no address for this network")
)

// Connector asks the wallet for the addresses it is willing to share.
type Connector interface {
	Addresses(ctx context.Context) ([]Entry, error)
}

// SnapshotStore persists the wallet's address list between runs.
type SnapshotStore interface {
	SaveAddresses(entries []Entry) error
	// LoadAddresses returns ok=false when no snapshot exists.
	LoadAddresses() (entries []Entry, ok bool, err error)
	Clear() error
}

// StaticConnector serves a fixed address list, e.g. one given on the command line.
type StaticConnector []Entry

func (c StaticConnector) Addresses(context.Context) ([]Entry, error) {
	return append([]Entry(nil), c...), nil
}

// Session is the single process-wide connection state. Create it once and
// drive it with Restore, Connect and Disconnect.
type Session struct {
	mtx       sync.RWMutex
	network   types.Network
	store     SnapshotStore
	connector Connector
	logger    log.Logger

	address string
}

func NewSession(network types.Network, store SnapshotStore, connector Connector, logger log.Logger) *Session {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Session{
		network:   network,
		store:     store,
		connector: connector,
		logger:    logger.With("module", "identity"),
	}
}

// Restore re-resolves identity from the persisted snapshot, as after a reload.
func (s *Session) Restore() (string, bool, error) {
	entries, ok, err := s.store.LoadAddresses()
	if err != nil {
		return "", false, fmt.Errorf("load session snapshot: %w", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !ok {
		s.address = ""
		return "", false, nil
	}
	addr, found := Resolve(entries, s.network.Symbol, s.network.PreferredPrefix)
	s.address = addr
	if found {
		s.logger.Debug("session restored", "address", addr)
	}
	return addr, found, nil
}

// Connect asks the wallet for addresses, resolves the user and persists the
// wallet's list for later Restore calls.
func (s *Session) Connect(ctx context.Context) (string, error) {
	if s.connector == nil {
		return "", errors.New("no wallet connector configured")
	}
	entries, err := s.connector.Addresses(ctx)
	if err != nil {
		return "", fmt.Errorf("connect wallet: %w", err)
	}
	addr, ok := Resolve(entries, s.network.Symbol, s.network.PreferredPrefix)
	if !ok {
		return "", ErrNoAddress
	}
	if err := s.store.SaveAddresses(entries); err != nil {
		return "", fmt.Errorf("save session snapshot: %w", err)
	}

	s.mtx.Lock()
	s.address = addr
	s.mtx.Unlock()

	s.logger.Info("wallet connected", "address", addr)
	return addr, nil
}

// Disconnect clears the identity unconditionally, then drops the snapshot.
func (s *Session) Disconnect() error {
	s.mtx.Lock()
	s.address = ""
	s.mtx.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear session snapshot: %w", err)
	}
	s.logger.Info("wallet disconnected")
	return nil
}

// Address returns the resolved user, if any.
func (s *Session) Address() (string, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.address, s.address != ""
}

// RequireAddress is Address for call sites that cannot proceed anonymously.
func (s *Session) RequireAddress() (string, error) {
	addr, ok := s.Address()
	if !ok {
		return "", ErrNotConnected
	}
	return addr, nil
}

func (s *Session) Network() types.Network { return s.network }

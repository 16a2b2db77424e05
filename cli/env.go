package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gologme/log"
	"github.com/spf13/cobra"
	tmlog "github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/cfg"
	"github.com/oderahub/stackpledge/identity"
	"github.com/oderahub/stackpledge/ledger"
	"github.com/oderahub/stackpledge/store"
	"github.com/oderahub/stackpledge/tx"
	"github.com/oderahub/stackpledge/types"
	"github.com/oderahub/stackpledge/wallet"
)

// env is what every command builds from the config file.
type env struct {
	config  *cfg.Config
	network types.Network
	logger  tmlog.Logger
	console *log.Logger
	gateway *ledger.Gateway
}

func newConsole() *log.Logger {
	l := log.New(os.Stderr, "", log.Flags())
	l.EnableLevel("info")
	l.EnableLevel("warn")
	l.EnableLevel("error")
	return l
}

func loadEnv() (*env, error) {
	config, err := cfg.ReadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf(`конфигурация не прочитана: %w

	Чтобы создать файл конфигурации, запусти:

	  stackpledge init

	По умолчанию файл ищется по пути: %s`, err, configPath)
	}
	logger, err := config.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	network := config.NetworkPreset()
	console := newConsole()
	if config.AutoSelectNode {
		probes := ledger.ProbeNodes(context.Background(), config.NodeURLs(), ledger.DefaultProbeTimeout)
		if u, ok := ledger.ClosestNode(probes); ok {
			network.APIURL = u
		} else {
			console.Warnln("ни один узел не ответил, используется", network.APIURL)
		}
	}
	return &env{
		config:  config,
		network: network,
		logger:  logger,
		console: console,
		gateway: ledger.NewGateway(network.APIURL, config.LedgerContract(), ledger.WithLogger(logger)),
	}, nil
}

func (e *env) bridge() *wallet.BridgeSigner {
	return wallet.NewBridgeSigner(e.config.Wallet.BridgeURL, wallet.WithLogger(e.logger))
}

// openSession opens the session store; the returned func closes it.
func (e *env) openSession(connector identity.Connector) (*identity.Session, func(), error) {
	path := sessionPath
	if path == "" {
		path = e.config.Wallet.SessionDB
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if connector == nil {
		connector = e.bridge()
	}
	session := identity.NewSession(e.network, st, connector, e.logger)
	closer := func() {
		if err := st.Close(); err != nil {
			e.console.Warnln("не удалось закрыть базу сессии:", err)
		}
	}
	return session, closer, nil
}

// currentUser restores the identity saved by the last connect.
func (e *env) currentUser() (string, error) {
	session, closeSession, err := e.openSession(nil)
	if err != nil {
		return "", err
	}
	defer closeSession()
	addr, _, err := session.Restore()
	return addr, err
}

func (e *env) txTarget(cmd *cobra.Command) tx.Target {
	var signer wallet.Signer = e.bridge()
	if e.config.Wallet.Confirm {
		signer = &wallet.ConfirmSigner{Next: signer, In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	}
	return tx.Target{
		Contract: e.config.LedgerContract(),
		Network:  e.network.Name,
		Signer:   signer,
		Logger:   e.logger,
	}
}

// report prints the settled transaction state, and fails the command unless
// the call was broadcast.
func (e *env) report(cmd *cobra.Command, st tx.State) error {
	switch st.Phase {
	case tx.Confirmed:
		fmt.Fprintf(cmd.OutOrStdout(), "Transaction broadcast: %s\n%s\n", st.TxID, e.config.Explorer().TxURL(st.TxID))
		return nil
	case tx.Cancelled:
		e.console.Warnln(st.Err)
		return nil
	}
	return errors.New(st.Err)
}

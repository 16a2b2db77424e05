package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oderahub/stackpledge/cfg"
	"github.com/oderahub/stackpledge/clarity"
	"github.com/oderahub/stackpledge/types"
)

const (
	creatorAddr = "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG"
	judgeAddr   = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
)

// chainNode serves /v2/info and get-commitment for a single expired record.
type chainNode struct {
	mtx    sync.Mutex
	status types.Status
	reads  int
}

func (n *chainNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/v2/info" {
		_ = json.NewEncoder(w).Encode(map[string]any{"stacks_tip_height": 2000})
		return
	}
	if !strings.HasSuffix(r.URL.Path, "/get-commitment") {
		_ = json.NewEncoder(w).Encode(map[string]any{"okay": false, "cause": "no such function"})
		return
	}

	n.mtx.Lock()
	n.reads++
	status := n.status
	n.mtx.Unlock()

	creator, _ := clarity.ParsePrincipal(creatorAddr)
	judge, _ := clarity.ParsePrincipal(judgeAddr)
	out, err := clarity.SerializeHex(clarity.Some{V: clarity.Tuple{
		"creator":        creator,
		"judge":          judge,
		"description":    clarity.StringUTF8("Read twelve books"),
		"stake-amount":   clarity.NewUInt(3_000_000),
		"deadline-block": clarity.NewUInt(1200),
		"status":         clarity.NewUInt(uint64(status)),
	}})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"okay": true, "result": out})
}

func (n *chainNode) readCount() int {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	return n.reads
}

// walletBridge hands out one address and broadcasts every call it is asked
// to sign.
type walletBridge struct {
	mtx     sync.Mutex
	address string
	signed  []string
}

func (b *walletBridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/v1/addresses":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"addresses": []map[string]string{{"address": b.address, "symbol": "STX"}},
		})
	case "/v1/contract-call":
		var req struct {
			FunctionName string `json:"function_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mtx.Lock()
		b.signed = append(b.signed, req.FunctionName)
		b.mtx.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"txid": "0xfeed"})
	default:
		http.NotFound(w, r)
	}
}

func (b *walletBridge) calls() []string {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return append([]string(nil), b.signed...)
}

// setupChain writes a config pointing at fake node and bridge servers and
// connects user through the bridge.
func setupChain(t *testing.T, user string, status types.Status) ([]string, *chainNode, *walletBridge) {
	t.Helper()
	node := &chainNode{status: status}
	nodeSrv := httptest.NewServer(node)
	t.Cleanup(nodeSrv.Close)
	bridge := &walletBridge{address: user}
	bridgeSrv := httptest.NewServer(bridge)
	t.Cleanup(bridgeSrv.Close)

	dir := t.TempDir()
	config := cfg.DefaultConfig()
	config.APIURL = nodeSrv.URL
	config.Wallet.BridgeURL = bridgeSrv.URL
	config.Wallet.Confirm = false
	config.LogLevel = "error"
	configFile := filepath.Join(dir, "config.toml")
	require.NoError(t, cfg.WriteConfig(config, configFile))

	common := []string{"--config", configFile, "--session", filepath.Join(dir, "session")}
	connectAddresses = ""
	out, err := run(t, append([]string{"connect"}, common...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Connected as "+user)
	return common, node, bridge
}

func TestJudgeChecksPermission(t *testing.T) {
	judgeForce = false
	t.Cleanup(func() { judgeForce = false })
	common, node, bridge := setupChain(t, creatorAddr, types.StatusActive)

	_, err := run(t, append([]string{"judge", "3", "success"}, common...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be judged")
	assert.Empty(t, bridge.calls())

	before := node.readCount()
	out, err := run(t, append([]string{"judge", "3", "failure", "--force"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, []string{"judge-commitment"}, bridge.calls())
	assert.Contains(t, out, "Transaction broadcast: 0xfeed")
	assert.Contains(t, out, "#3")
	// one read for the check and one after the broadcast
	assert.Equal(t, before+2, node.readCount())
}

func TestJudgeAsJudge(t *testing.T) {
	judgeForce = false
	common, _, bridge := setupChain(t, judgeAddr, types.StatusActive)

	out, err := run(t, append([]string{"judge", "3", "success"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, []string{"judge-commitment"}, bridge.calls())
	assert.Contains(t, out, "Transaction broadcast: 0xfeed")
}

func TestClaimChecksPermission(t *testing.T) {
	claimForce = false
	t.Cleanup(func() { claimForce = false })

	t.Run("not yet successful", func(t *testing.T) {
		common, _, bridge := setupChain(t, creatorAddr, types.StatusActive)
		_, err := run(t, append([]string{"claim", "3"}, common...)...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be claimed")
		assert.Empty(t, bridge.calls())
	})

	t.Run("successful creator", func(t *testing.T) {
		common, node, bridge := setupChain(t, creatorAddr, types.StatusSuccess)
		before := node.readCount()
		out, err := run(t, append([]string{"claim", "3"}, common...)...)
		require.NoError(t, err)
		assert.Equal(t, []string{"claim-stake"}, bridge.calls())
		assert.Contains(t, out, "Transaction broadcast: 0xfeed")
		assert.Equal(t, before+2, node.readCount())
	})

	t.Run("force", func(t *testing.T) {
		common, _, bridge := setupChain(t, judgeAddr, types.StatusSuccess)
		_, err := run(t, append([]string{"claim", "3"}, common...)...)
		require.Error(t, err)

		_, err = run(t, append([]string{"claim", "3", "--force"}, common...)...)
		require.NoError(t, err)
		assert.Equal(t, []string{"claim-stake"}, bridge.calls())
	})
}

package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oderahub/stackpledge/clarity"
	"github.com/oderahub/stackpledge/identity"
)

func testCall() ContractCall {
	return ContractCall{
		ContractAddress:   "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG",
		ContractName:      "stake-pledge",
		Function:          "claim-stake",
		Args:              []clarity.Value{clarity.NewUInt(7)},
		PostConditionMode: PostConditionDeny,
		Network:           "mainnet",
	}
}

func bridge(t *testing.T, h http.HandlerFunc) *BridgeSigner {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewBridgeSigner(srv.URL)
}

func TestBridgeAddresses(t *testing.T) {
	b := bridge(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/addresses", r.URL.Path)
		_ = json.NewEncoder(w).Encode(addressesResponse{Addresses: []identity.Entry{
			{Address: "SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4", Symbol: "STX"},
			{Address: "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG", Symbol: "STX"},
		}})
	})

	entries, err := b.Addresses(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG", entries[1].Address)
}

func TestBridgeSign(t *testing.T) {
	var got contractCallRequest
	var key string
	b := bridge(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		key = r.Header.Get("Idempotency-Key")
		_ = json.NewEncoder(w).Encode(contractCallResponse{TxID: "0xfeed"})
	})

	res := b.Sign(context.Background(), testCall())
	require.Equal(t, Broadcast, res.Outcome, "err: %v", res.Err)
	assert.Equal(t, "0xfeed", res.TxID)

	assert.Equal(t, "claim-stake", got.FunctionName)
	assert.Equal(t, "deny", got.PostConditionMode)
	assert.Equal(t, []string{"0x0100000000000000000000000000000007"}, got.FunctionArgs)
	_, err := uuid.Parse(got.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, got.RequestID, key)
}

func TestBridgeOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		outcome Outcome
		errPart string
	}{
		{"cancelled", http.StatusOK, `{"cancelled":true}`, Cancelled, ""},
		{"wallet error", http.StatusOK, `{"error":"insufficient balance"}`, Failed, "insufficient balance"},
		{"no txid", http.StatusOK, `{}`, Failed, "no transaction id"},
		{"http error", http.StatusBadGateway, `{"error":"node offline"}`, Failed, "node offline"},
		{"http error no body", http.StatusInternalServerError, ``, Failed, "status 500"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := bridge(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			res := b.Sign(context.Background(), testCall())
			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Empty(t, res.TxID)
			if tc.errPart != "" {
				require.Error(t, res.Err)
				assert.Contains(t, res.Err.Error(), tc.errPart)
			} else {
				assert.NoError(t, res.Err)
			}
		})
	}
}

type recordingSigner struct {
	calls int
}

func (r *recordingSigner) Sign(context.Context, ContractCall) SignResult {
	r.calls++
	return BroadcastResult("0xabc")
}

func TestConfirmSigner(t *testing.T) {
	t.Run("yes", func(t *testing.T) {
		next := &recordingSigner{}
		var out bytes.Buffer
		s := &ConfirmSigner{Next: next, In: strings.NewReader("y\n"), Out: &out}
		res := s.Sign(context.Background(), testCall())
		assert.Equal(t, Broadcast, res.Outcome)
		assert.Equal(t, 1, next.calls)
		assert.Contains(t, out.String(), "claim-stake(u7)")
	})

	for _, answer := range []string{"n\n", "\n", "maybe\n", ""} {
		next := &recordingSigner{}
		s := &ConfirmSigner{Next: next, In: strings.NewReader(answer), Out: &bytes.Buffer{}}
		res := s.Sign(context.Background(), testCall())
		assert.Equal(t, Cancelled, res.Outcome, "answer %q", answer)
		assert.Zero(t, next.calls)
	}
}

func TestSummary(t *testing.T) {
	judge, err := clarity.ParsePrincipal("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
	require.NoError(t, err)
	call := ContractCall{
		ContractAddress: "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG",
		ContractName:    "stake-pledge",
		Function:        "pledge",
		Args:            []clarity.Value{clarity.StringUTF8("run"), judge, clarity.NewUInt(144), clarity.Bool(true)},
	}
	assert.Equal(t,
		`SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG.stake-pledge::pledge(u"run", 'SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7, u144, true)`,
		call.Summary())
}

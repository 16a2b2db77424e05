package clarity

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHash(t *testing.T, s string) [20]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 20)
	var h [20]byte
	copy(h[:], b)
	return h
}

func TestAddressVectors(t *testing.T) {
	cases := []struct {
		version byte
		hash    string
		addr    string
	}{
		{VersionMainnetSingleSig, "a46ff88886c2ef9762d970b4d2c63678835bd39d", "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"},
		{VersionMainnetSingleSig, "9fe295b3255d9ac4ce2b259afec265cb6f957d31", "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG"},
		{VersionMainnetSingleSig, strings.Repeat("00", 20), "SP000000000000000000002Q6VF78"},
		{VersionTestnetSingleSig, strings.Repeat("00", 20), "ST000000000000000000002AMW42H"},
		{VersionMainnetMultiSig, strings.Repeat("01", 20), "SMG2081040G2081040G2081040G2081062P1BT0"},
		{VersionMainnetSingleSig, strings.Repeat("01", 20), "SPG2081040G2081040G2081040G208107P280EP"},
	}
	for _, c := range cases {
		t.Run(c.addr, func(t *testing.T) {
			hash := mustHash(t, c.hash)
			assert.Equal(t, c.addr, EncodeAddress(c.version, hash))

			p, err := ParsePrincipal(c.addr)
			require.NoError(t, err)
			assert.Equal(t, c.version, p.Version)
			assert.Equal(t, hash, p.Hash)
			assert.Equal(t, c.addr, p.String())
		})
	}
}

func TestParsePrincipalErrors(t *testing.T) {
	_, err := ParsePrincipal("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ8")
	assert.ErrorIs(t, err, ErrBadChecksum)

	for _, bad := range []string{"", "SP", "XP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", "SP2J6ZY48U", "SPZZ"} {
		_, err := ParsePrincipal(bad)
		assert.Error(t, err, bad)
	}

	// Lower case and O/I/L confusables normalize.
	p, err := ParsePrincipal("SP2fy55dk4nesnh6e5cjsnzp2cq5pz5bx64b29fyg")
	require.NoError(t, err)
	assert.Equal(t, "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG", p.String())
}

func TestParseContractPrincipal(t *testing.T) {
	c, err := ParseContractPrincipal("SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG.stake-pledge")
	require.NoError(t, err)
	assert.Equal(t, "stake-pledge", c.Name)
	assert.Equal(t, "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG.stake-pledge", c.String())

	_, err = ParseContractPrincipal("SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG")
	assert.ErrorIs(t, err, ErrBadAddress)
}

func TestSerializeKnownBytes(t *testing.T) {
	got, err := SerializeHex(NewUInt(1))
	require.NoError(t, err)
	assert.Equal(t, "0x01"+strings.Repeat("00", 15)+"01", got)

	got, err = SerializeHex(Bool(true))
	require.NoError(t, err)
	assert.Equal(t, "0x03", got)

	got, err = SerializeHex(StringUTF8("hi"))
	require.NoError(t, err)
	assert.Equal(t, "0x0e000000026869", got)

	got, err = SerializeHex(NewInt(-1))
	require.NoError(t, err)
	assert.Equal(t, "0x00"+strings.Repeat("ff", 16), got)

	// Keys are written sorted regardless of map order.
	got, err = SerializeHex(Tuple{"b": Bool(false), "a": None{}})
	require.NoError(t, err)
	assert.Equal(t, "0x0c00000002"+"0161"+"09"+"0162"+"04", got)
}

func TestRoundTrip(t *testing.T) {
	judge, err := ParsePrincipal("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
	require.NoError(t, err)

	big128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	values := []Value{
		NewUInt(0),
		UInt{V: big128},
		NewInt(-42),
		Bool(false),
		Buffer{1, 2, 3},
		StringASCII("ascii"),
		StringUTF8("run 5km every day ✓"),
		judge,
		ContractPrincipal{Address: judge, Name: "stake-pledge"},
		None{},
		Some{V: NewUInt(7)},
		ResponseOk{V: Bool(true)},
		ResponseErr{V: NewUInt(100)},
		List{NewUInt(1), NewUInt(2)},
		Tuple{
			"creator":        judge,
			"description":    StringUTF8("ship it"),
			"stake-amount":   NewUInt(5_000_000),
			"deadline-block": NewUInt(170_000),
			"status":         NewUInt(1),
		},
	}
	for _, v := range values {
		b, err := Serialize(v)
		require.NoError(t, err, "%T", v)
		back, err := Deserialize(b)
		require.NoError(t, err, "%T", v)
		again, err := Serialize(back)
		require.NoError(t, err)
		assert.Equal(t, b, again, "%T", v)
		assert.Equal(t, v.Type(), back.Type())
	}
}

func TestDeserializeErrors(t *testing.T) {
	_, err := DeserializeHex("0x01")
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = DeserializeHex("0xff")
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = DeserializeHex("0x0304")
	assert.ErrorIs(t, err, ErrTrailing)

	_, err = DeserializeHex("0x0effffffff")
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = DeserializeHex("zz")
	assert.Error(t, err)

	_, err = Serialize(UInt{V: new(big.Int).Lsh(big.NewInt(1), 128)})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestUInt64(t *testing.T) {
	v, err := NewUInt(99).Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(99), v)

	_, err = UInt{V: new(big.Int).Lsh(big.NewInt(1), 64)}.Uint64()
	assert.ErrorIs(t, err, ErrOutOfRange)
}

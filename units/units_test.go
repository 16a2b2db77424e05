package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplayAmount(t *testing.T) {
	cases := []struct {
		raw  uint64
		want string
	}{
		{0, "0"},
		{1, "0.000001"},
		{1_000_000, "1"},
		{1_500_000, "1.5"},
		{1_234_567_890_000, "1,234,567.89"},
		{999_999, "0.999999"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToDisplayAmount(c.raw), "raw=%d", c.raw)
	}
}

func TestParseDisplayAmount(t *testing.T) {
	t.Run("Floors", func(t *testing.T) {
		got, err := ParseDisplayAmount("1.9999995")
		require.NoError(t, err)
		assert.Equal(t, uint64(1999999), got)
	})

	t.Run("Plain", func(t *testing.T) {
		got, err := ParseDisplayAmount(" 25 ")
		require.NoError(t, err)
		assert.Equal(t, uint64(25_000_000), got)

		got, err = ParseDisplayAmount(".5")
		require.NoError(t, err)
		assert.Equal(t, uint64(500_000), got)

		got, err = ParseDisplayAmount("1e2")
		require.NoError(t, err)
		assert.Equal(t, uint64(100_000_000), got)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, in := range []string{"", "abc", "-1", "1/3", "0x10", "NaN", "1.2.3", "1e9999"} {
			_, err := ParseDisplayAmount(in)
			assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := ParseDisplayAmount("100000000000000000000")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestDisplayRoundTrip(t *testing.T) {
	for _, x := range []uint64{0, Scale, 7 * Scale, 1_234 * Scale, 9_876_543 * Scale} {
		got, err := ParseDisplayAmount(ToDisplayAmount(x))
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}
	// Exact fractional values survive too.
	got, err := ParseDisplayAmount(ToDisplayAmount(1_234_567))
	require.NoError(t, err)
	assert.Equal(t, uint64(1_234_567), got)
}

func TestBlocksToDuration(t *testing.T) {
	assert.Equal(t, "1 day", BlocksToDuration(144))
	assert.Equal(t, "2 days", BlocksToDuration(300))
	assert.Equal(t, "1 hour", BlocksToDuration(6))
	assert.Equal(t, "23 hours", BlocksToDuration(143))
	assert.Equal(t, "30 minutes", BlocksToDuration(3))
	assert.Equal(t, "10 minutes", BlocksToDuration(1))
	assert.Equal(t, "0 minutes", BlocksToDuration(0))
}

func TestDaysToBlocks(t *testing.T) {
	assert.Equal(t, uint64(144), DaysToBlocks(1))
	assert.Equal(t, uint64(1008), DaysToBlocks(7))
}

func TestFormatBlock(t *testing.T) {
	assert.Equal(t, "150,321", FormatBlock(150_321))
	assert.Equal(t, "12", FormatBlock(12))
}

// Package units converts between on-chain integers (micro-STX amounts, block
// counts) and the values shown to people.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Scale is the number of smallest units in one display unit (1 STX = 10^6 µSTX).
	Scale    = 1_000_000
	// Decimals is the number of fractional digits Scale allows.
	Decimals = 6

	// MinutesPerBlock is the assumed block cadence.
	MinutesPerBlock = 10
	// BlocksPerDay is 144 on Stacks (~10 minute blocks).
	BlocksPerDay    = 24 * 60 / MinutesPerBlock

	// MinStake is the smallest stake the pledge form accepts, 1 STX.
	MinStake uint64 = 1 * Scale
)

var ErrInvalidAmount = errors.New("invalid STX amount")

var (
	printer       = message.NewPrinter(language.English)
	decimalAmount = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d{1,3})?$`)
)

// ToDisplayAmount renders raw µSTX as STX with grouped thousands and up to
// six fractional digits, trailing zeros dropped.
func ToDisplayAmount(raw uint64) string {
	whole := printer.Sprintf("%d", raw/Scale)
	frac := raw % Scale
	if frac == 0 {
		return whole
	}
	digits := strings.TrimRight(fmt.Sprintf("%0*d", Decimals, frac), "0")
	return whole + "." + digits
}

// ParseDisplayAmount parses a non-negative STX amount and floors it to µSTX.
// Grouping commas are accepted so ToDisplayAmount output parses back.
func ParseDisplayAmount(s string) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if !decimalAmount.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok || r.Sign() < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	r.Mul(r, new(big.Rat).SetInt64(Scale))
	// Rat keeps the denominator positive, so Quo truncation is a floor here.
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if !q.IsUint64() {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return q.Uint64(), nil
}

// BlocksToDuration renders a block count in the single largest whole unit:
// days, then hours, then minutes.
func BlocksToDuration(blocks int64) string {
	minutes := blocks * MinutesPerBlock
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return plural(days, "day")
	case hours > 0:
		return plural(hours, "hour")
	default:
		return plural(minutes, "minute")
	}
}

// DaysToBlocks converts a deadline in days to the block offset sent with a pledge.
func DaysToBlocks(days uint64) uint64 {
	return days * BlocksPerDay
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatBlock renders a block height with grouped thousands.
func FormatBlock(height int64) string {
	return printer.Sprintf("%d", height)
}

package settlement

import "github.com/shopspring/decimal"

// bpsScale is the decimal exponent of one basis point (1 bps = 10^-4).
const bpsScale = 4

// RoundHalfUpBps returns cents*bps/10000 rounded to the nearest cent, ties away from zero.
// It is the only place a percentage is turned into money.
func RoundHalfUpBps(cents, bps int64) int64 {
	if cents == 0 || bps == 0 {
		return 0
	}
	return decimal.NewFromInt(cents).
		Mul(decimal.NewFromInt(bps)).
		Shift(-bpsScale).
		Round(0).
		IntPart()
}

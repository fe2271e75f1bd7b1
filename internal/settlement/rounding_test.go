package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUpBps(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		bps   int64
		want  int64
	}{
		{name: "exact", cents: 5000, bps: 1000, want: 500},
		{name: "tie rounds up", cents: 4995, bps: 1000, want: 500},
		{name: "half cent rounds up", cents: 5, bps: 1000, want: 1},
		{name: "below half rounds down", cents: 4, bps: 1000, want: 0},
		{name: "above half rounds up", cents: 3996, bps: 1000, want: 400},
		{name: "below half rounds down after scaling", cents: 3991, bps: 1000, want: 399},
		{name: "one bps on a large amount", cents: 15_000, bps: 1, want: 2},
		{name: "full rate", cents: 12_345, bps: MaxBps, want: 12_345},
		{name: "zero rate", cents: 12_345, bps: 0, want: 0},
		{name: "zero amount", cents: 0, bps: 500, want: 0},
		{name: "negative tie away from zero", cents: -5, bps: 1000, want: -1},
		{name: "no overflow at the range limit", cents: MaxAmountCents, bps: 9999, want: MaxAmountCents / 10000 * 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundHalfUpBps(tt.cents, tt.bps))
		})
	}
}

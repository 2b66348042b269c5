package analysis

import (
	"fmt"
	"math"
	"strconv"
)

// Growth-rate markers for the zero-prior cases. These render as tokens,
// never as numbers, so a boundless relative increase cannot be mistaken
// for a large finite percentage.
const (
	PosInfToken = "∞"
	NegInfToken = "-∞"
)

// GrowthRate is a period-over-period growth percentage. Finite values are
// percentages rounded to two decimals; the zero-prior transitions carry
// the IEEE infinities as distinct sentinels.
type GrowthRate float64

// IsInf reports whether the rate is one of the infinity sentinels.
func (g GrowthRate) IsInf() bool {
	return math.IsInf(float64(g), 0)
}

// String renders the rate: a two-decimal percentage, or the marker token.
func (g GrowthRate) String() string {
	switch {
	case math.IsInf(float64(g), 1):
		return PosInfToken
	case math.IsInf(float64(g), -1):
		return NegInfToken
	default:
		return fmt.Sprintf("%.2f%%", float64(g))
	}
}

// MarshalJSON writes finite rates as numbers and the sentinels as their
// tokens, since JSON has no infinity literal.
func (g GrowthRate) MarshalJSON() ([]byte, error) {
	if g.IsInf() {
		return strconv.AppendQuote(nil, g.String()), nil
	}
	return strconv.AppendFloat(nil, float64(g), 'f', -1, 64), nil
}

// Growth computes the absolute change and growth rate between a prior and
// current total:
//
//	prior != 0            -> 100*(current-prior)/prior, rounded to 2 decimals
//	prior == 0, current>0 -> +Inf sentinel
//	prior == 0, current=0 -> 0
//	prior == 0, current<0 -> -Inf sentinel
func Growth(prior, current float64) (delta float64, rate GrowthRate) {
	delta = current - prior

	if prior != 0 {
		return delta, GrowthRate(round2(100 * delta / prior))
	}

	switch {
	case current > 0:
		return delta, GrowthRate(math.Inf(1))
	case current < 0:
		return delta, GrowthRate(math.Inf(-1))
	default:
		return delta, 0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

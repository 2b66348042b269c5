package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowth(t *testing.T) {
	tests := []struct {
		name      string
		prior     float64
		current   float64
		wantDelta float64
		wantRate  float64
	}{
		{"simple growth", 400, 500, 100, 25.00},
		{"decline to zero", 200, 0, -200, -100.00},
		{"no change", 150, 150, 0, 0},
		{"rounding to two decimals", 3, 4, 1, 33.33},
		{"negative prior", -100, -50, 50, -50.00},
		{"zero prior and current", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, rate := Growth(tt.prior, tt.current)
			assert.Equal(t, tt.wantDelta, delta)
			assert.Equal(t, GrowthRate(tt.wantRate), rate)
		})
	}
}

func TestGrowth_ZeroPrior(t *testing.T) {
	delta, rate := Growth(0, 40)
	assert.Equal(t, 40.0, delta)
	assert.True(t, math.IsInf(float64(rate), 1))
	assert.Equal(t, PosInfToken, rate.String())

	delta, rate = Growth(0, -40)
	assert.Equal(t, -40.0, delta)
	assert.True(t, math.IsInf(float64(rate), -1))
	assert.Equal(t, NegInfToken, rate.String())
}

func TestGrowthRate_String(t *testing.T) {
	tests := []struct {
		name string
		rate GrowthRate
		want string
	}{
		{"finite", GrowthRate(25), "25.00%"},
		{"finite negative", GrowthRate(-100), "-100.00%"},
		{"two decimals kept", GrowthRate(33.33), "33.33%"},
		{"positive infinity", GrowthRate(math.Inf(1)), PosInfToken},
		{"negative infinity", GrowthRate(math.Inf(-1)), NegInfToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rate.String())
		})
	}
}

func TestGrowthRate_MarshalJSON(t *testing.T) {
	finite, err := json.Marshal(GrowthRate(12.5))
	assert.NoError(t, err)
	assert.Equal(t, "12.5", string(finite))

	inf, err := json.Marshal(GrowthRate(math.Inf(1)))
	assert.NoError(t, err)
	assert.Equal(t, `"`+PosInfToken+`"`, string(inf))

	negInf, err := json.Marshal(GrowthRate(math.Inf(-1)))
	assert.NoError(t, err)
	assert.Equal(t, `"`+NegInfToken+`"`, string(negInf))
}

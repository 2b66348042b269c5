package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	got := Header([]string{"region", "product_line"}, []string{"sales", "quantity"})

	assert.Equal(t, []string{
		"region", "product_line",
		"sales_prior", "sales_current", "sales_delta", "sales_growth_pct",
		"quantity_prior", "quantity_current", "quantity_delta", "quantity_growth_pct",
	}, got)
}

func TestHeader_GrandTotal(t *testing.T) {
	got := Header(nil, []string{"sales"})
	assert.Equal(t, []string{"sales_prior", "sales_current", "sales_delta", "sales_growth_pct"}, got)
}

func TestRender(t *testing.T) {
	rows := []ComparisonRow{
		{
			Key:   MakeGroupKey([]string{"East"}),
			Parts: []string{"East"},
			Metrics: []MetricComparison{
				{Metric: "sales", Prior: 400, Current: 500, Delta: 100, Growth: GrowthRate(25)},
			},
		},
		{
			Key:   MakeGroupKey([]string{"North"}),
			Parts: []string{"North"},
			Metrics: []MetricComparison{
				{Metric: "sales", Prior: 0, Current: 40, Delta: 40, Growth: GrowthRate(math.Inf(1))},
			},
		},
	}

	got := Render(rows)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"East", "400", "500", "100", "25.00%"}, got[0])
	assert.Equal(t, []string{"North", "0", "40", "40", PosInfToken}, got[1])
}

func TestRender_FractionalTotals(t *testing.T) {
	rows := []ComparisonRow{
		{
			Parts: []string{"East"},
			Metrics: []MetricComparison{
				{Metric: "sales", Prior: 0.5, Current: 1.25, Delta: 0.75, Growth: GrowthRate(150)},
			},
		},
	}

	got := Render(rows)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"East", "0.5", "1.25", "0.75", "150.00%"}, got[0])
}

func TestTable(t *testing.T) {
	c := &Comparison{
		GroupColumns: []string{"region"},
		Metrics:      []string{"sales"},
		Rows: []ComparisonRow{
			{
				Parts: []string{"West"},
				Metrics: []MetricComparison{
					{Metric: "sales", Prior: 200, Current: 0, Delta: -200, Growth: GrowthRate(-100)},
				},
			},
		},
	}

	header, records := Table(c)
	assert.Equal(t, []string{"region", "sales_prior", "sales_current", "sales_delta", "sales_growth_pct"}, header)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"West", "200", "0", "-200", "-100.00%"}, records[0])
}

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "popcli/internal/errors"
)

func TestMetricRange(t *testing.T) {
	prior := mustDataset(t, `region,loan_amount
East,100
West,300
`)
	current := mustDataset(t, `region,loan_amount
East,200
West,400
North,bad
`)

	got, err := MetricRange("loan_amount", prior, current)
	require.NoError(t, err)

	assert.Equal(t, "loan_amount", got.Metric)
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, 100.0, got.Min)
	assert.Equal(t, 400.0, got.Max)
	assert.Equal(t, 250.0, got.Mean)
	assert.Equal(t, 250.0, got.Median)
}

func TestMetricRange_OddCount(t *testing.T) {
	ds := mustDataset(t, `loan_amount
10
30
20
`)

	got, err := MetricRange("loan_amount", ds)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Median)
}

func TestMetricRange_NoNumericValues(t *testing.T) {
	ds := mustDataset(t, `region,notes
East,hello
`)

	_, err := MetricRange("notes", ds)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	_, err = MetricRange("absent", ds)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popcli/internal/dataset"
)

func mustDataset(t *testing.T, csvData string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.ReadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	return ds
}

func TestClassifier_Classify(t *testing.T) {
	ds := mustDataset(t, `order_id,region,product_line,sales,loan_amount,notes
A1,East,Retail,100,1200,first
A2,West,Retail,50,800,
A3,East,Corporate,25,950,third
`)

	classifier := NewClassifier(nil, DefaultClassifierConfig())
	got := classifier.Classify(ds)

	assert.Equal(t, []string{"region", "product_line", "notes"}, got.Dimensions)
	assert.Equal(t, []string{"sales", "loan_amount"}, got.Metrics)
	assert.Equal(t, []string{"order_id"}, got.Ignored)
}

func TestClassifier_ExclusionsAreCaseInsensitive(t *testing.T) {
	ds := mustDataset(t, `Region,Branch_Code,sales
East,BC-1,100
`)

	classifier := NewClassifier(nil, ClassifierConfig{
		ExcludeColumns: []string{"branch_code"},
	})
	got := classifier.Classify(ds)

	assert.Equal(t, []string{"Region"}, got.Dimensions)
	assert.Equal(t, []string{"sales"}, got.Metrics)
	assert.Contains(t, got.Ignored, "Branch_Code")
}

func TestClassifier_PerRunExtraExclusions(t *testing.T) {
	ds := mustDataset(t, `region,channel,sales
East,Online,100
`)

	classifier := NewClassifier(nil, DefaultClassifierConfig())
	got := classifier.Classify(ds, "channel")

	assert.Equal(t, []string{"region"}, got.Dimensions)
	assert.Contains(t, got.Ignored, "channel")
}

func TestClassifier_EmptyColumnIgnored(t *testing.T) {
	ds := mustDataset(t, `region,empty,sales
East,,100
West,,50
`)

	got := NewClassifier(nil, DefaultClassifierConfig()).Classify(ds)

	assert.Contains(t, got.Ignored, "empty")
	assert.NotContains(t, got.Dimensions, "empty")
	assert.NotContains(t, got.Metrics, "empty")
}

func TestClassifier_MixedColumnProbing(t *testing.T) {
	// convertible: text cells that still parse as numbers -> metric
	convertible := mustDataset(t, `region,amount
East,$1200
West,800
`)
	// not convertible: genuine text mixed with numbers -> dimension
	mixed := mustDataset(t, `region,code
East,7
West,B-2
`)

	classifier := NewClassifier(nil, DefaultClassifierConfig())

	got := classifier.Classify(convertible)
	assert.Equal(t, []string{"amount"}, got.Metrics)

	got = classifier.Classify(mixed)
	assert.Equal(t, []string{"region", "code"}, got.Dimensions)
	assert.Empty(t, got.Metrics)
}

func TestClassifier_Stability(t *testing.T) {
	ds := mustDataset(t, `region,product_line,sales,loan_amount
East,Retail,100,1200
West,Corporate,50,800
`)

	classifier := NewClassifier(nil, DefaultClassifierConfig())
	first := classifier.Classify(ds)
	second := classifier.Classify(ds)

	assert.Equal(t, first, second)
}

func TestClassifyColumn(t *testing.T) {
	tests := []struct {
		name     string
		declared dataset.ColumnType
		samples  []dataset.Value
		want     ColumnRole
	}{
		{"number type", dataset.TypeNumber, nil, RoleMetric},
		{"text type", dataset.TypeText, []dataset.Value{dataset.Text("East")}, RoleDimension},
		{
			"mixed all convertible",
			dataset.TypeMixed,
			[]dataset.Value{dataset.Number(1), dataset.Text("2,500")},
			RoleMetric,
		},
		{
			"mixed with unconvertible sample",
			dataset.TypeMixed,
			[]dataset.Value{dataset.Number(1), dataset.Text("B-2")},
			RoleDimension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyColumn(tt.declared, tt.samples))
		})
	}
}

func TestClassification_Role(t *testing.T) {
	c := Classification{
		Dimensions: []string{"region"},
		Metrics:    []string{"sales"},
		Ignored:    []string{"order_id"},
	}

	assert.Equal(t, RoleDimension, c.Role("region"))
	assert.Equal(t, RoleMetric, c.Role("sales"))
	assert.Equal(t, RoleIgnored, c.Role("order_id"))
	assert.Equal(t, RoleIgnored, c.Role("unknown"))
}

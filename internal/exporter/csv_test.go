package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_WriteSimpleCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(nil, dir)

	err := writer.WriteSimpleCSV("out/comparison.csv",
		[]string{"region", "sales_prior", "sales_current", "sales_delta", "sales_growth_pct"},
		[][]string{
			{"East", "400", "500", "100", "25.00%"},
			{"North", "0", "40", "40", "∞"},
		})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out", "comparison.csv"))
	require.NoError(t, err)

	// BOM prefix, then the header line
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	content := string(data[3:])
	assert.Contains(t, content, "region,sales_prior,sales_current,sales_delta,sales_growth_pct\n")
	assert.Contains(t, content, "East,400,500,100,25.00%\n")
	assert.Contains(t, content, "North,0,40,40,∞\n")
}

func TestCSVWriter_Append(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(nil, dir)

	require.NoError(t, writer.WriteSimpleCSV("history.csv",
		[]string{"run", "groups"}, [][]string{{"1", "4"}}))
	require.NoError(t, writer.AppendToCSV("history.csv", [][]string{{"2", "5"}}))

	data, err := os.ReadFile(filepath.Join(dir, "history.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,4\n2,5\n")
}

func TestCSVWriter_AbsolutePathBypassesBase(t *testing.T) {
	base := t.TempDir()
	other := t.TempDir()
	writer := NewCSVWriter(nil, base)

	target := filepath.Join(other, "direct.csv")
	require.NoError(t, writer.WriteSimpleCSV(target, []string{"a"}, [][]string{{"1"}}))

	_, err := os.Stat(target)
	assert.NoError(t, err)
}

package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, "MAE,Shares,Price,Profit\n-1.2%,100,50.5,-30\n-0.8%,50,20,15\n")

	table, err := LoadCSV(path, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"MAE", "Shares", "Price", "Profit"}, table.Headers())
	assert.Equal(t, 2, table.RowCount())
	assert.True(t, table.HasColumn("MAE"))
	assert.False(t, table.HasColumn("Ticker"))
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCSVShortRowsPadded(t *testing.T) {
	path := writeTempCSV(t, "MAE,Shares,Price,Profit\n-1.0,100\n")

	table, err := LoadCSV(path, zap.NewNop())
	require.NoError(t, err)

	profit, ok := table.Numeric("Profit")
	require.True(t, ok)
	assert.True(t, math.IsNaN(profit[0]), "padded cells are missing, not zero")
}

func TestNumericPercentSniffing(t *testing.T) {
	// Majority of the column carries a % suffix, so the whole column is
	// treated as percent-formatted; the bare -2.0 still parses.
	table := NewTable([]string{"MAE"}, [][]string{
		{"-1.5%"}, {"-0.25%"}, {"-3.1%"}, {"-2.0"},
	})

	values, ok := table.Numeric("MAE")
	require.True(t, ok)
	assert.InDelta(t, -1.5, values[0], 1e-9)
	assert.InDelta(t, -0.25, values[1], 1e-9)
	assert.InDelta(t, -3.1, values[2], 1e-9)
	assert.InDelta(t, -2.0, values[3], 1e-9)
}

func TestNumericMinoritySuffixLeftAlone(t *testing.T) {
	// Only one of three non-empty cells ends in %, so suffixes are not
	// stripped and that cell fails coercion.
	table := NewTable([]string{"Shares"}, [][]string{
		{"100"}, {"50%"}, {"25"},
	})

	values, ok := table.Numeric("Shares")
	require.True(t, ok)
	assert.InDelta(t, 100.0, values[0], 1e-9)
	assert.True(t, math.IsNaN(values[1]))
	assert.InDelta(t, 25.0, values[2], 1e-9)
}

func TestNumericThousandsSeparators(t *testing.T) {
	table := NewTable([]string{"Profit"}, [][]string{
		{"1,250.75"}, {"-3,000"},
	})

	values, ok := table.Numeric("Profit")
	require.True(t, ok)
	assert.InDelta(t, 1250.75, values[0], 1e-9)
	assert.InDelta(t, -3000.0, values[1], 1e-9)
}

func TestNumericMissingColumn(t *testing.T) {
	table := NewTable([]string{"MAE"}, nil)

	_, ok := table.Numeric("Profit")
	assert.False(t, ok)
}

func TestNumericEmptyAndGarbageCells(t *testing.T) {
	table := NewTable([]string{"Price"}, [][]string{
		{""}, {"abc"}, {"12.5"},
	})

	values, ok := table.Numeric("Price")
	require.True(t, ok)
	assert.True(t, math.IsNaN(values[0]))
	assert.True(t, math.IsNaN(values[1]))
	assert.InDelta(t, 12.5, values[2], 1e-9)
}

package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/dataset"
)

func tradeTable(records [][]string) *dataset.Table {
	return dataset.NewTable([]string{"Date", "MAE", "Shares", "Price", "Profit"}, records)
}

func TestValidTrades(t *testing.T) {
	table := tradeTable([][]string{
		{"2024-01-02", "-1.0", "100", "50", "-30"},
		{"2024-01-03", "-5.0", "100", "50", "-250"},
		{"2024-01-04", "-0.5", "50", "20", "15"},
	})

	trades, err := ValidTrades(table, DefaultColumns())
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, Trade{MAE: -1.0, Shares: 100, Price: 50, Profit: -30}, trades[0])
}

func TestValidTradesExcludesIncompleteRows(t *testing.T) {
	table := tradeTable([][]string{
		{"2024-01-02", "-1.0", "100", "50", "-30"},
		{"2024-01-03", "", "100", "50", "-250"},        // missing MAE
		{"2024-01-04", "-0.5", "n/a", "20", "15"},      // non-numeric shares
		{"2024-01-05", "-2.0", "80", "33.5", "banana"}, // non-numeric profit
		{"2024-01-06", "-3.0", "10", "12", "4"},
	})

	trades, err := ValidTrades(table, DefaultColumns())
	require.NoError(t, err)
	// Rows with any missing or non-numeric field are dropped, not defaulted.
	require.Len(t, trades, 2)
	assert.InDelta(t, -1.0, trades[0].MAE, 1e-9)
	assert.InDelta(t, -3.0, trades[1].MAE, 1e-9)
}

func TestValidTradesMissingColumns(t *testing.T) {
	table := dataset.NewTable([]string{"Date", "MAE", "Profit"}, [][]string{
		{"2024-01-02", "-1.0", "-30"},
	})

	_, err := ValidTrades(table, DefaultColumns())
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"Shares", "Price"}, missing.Missing)
	assert.Equal(t, []string{"Date", "MAE", "Profit"}, missing.Available)
	assert.Contains(t, err.Error(), "Shares")
	assert.Contains(t, err.Error(), "available")
}

func TestValidTradesEmptyValidSet(t *testing.T) {
	table := tradeTable([][]string{
		{"2024-01-02", "", "100", "50", "-30"},
		{"2024-01-03", "oops", "100", "50", "-250"},
	})

	_, err := ValidTrades(table, DefaultColumns())
	var empty *EmptyValidDataError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, 2, empty.Rows)
}

func TestValidTradesCustomColumnNames(t *testing.T) {
	table := dataset.NewTable(
		[]string{"Drawdown", "Qty", "Entry", "PnL"},
		[][]string{{"-2.5", "30", "101.5", "42"}},
	)

	trades, err := ValidTrades(table, Columns{MAE: "Drawdown", Shares: "Qty", Price: "Entry", Profit: "PnL"})
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.InDelta(t, -2.5, trades[0].MAE, 1e-9)
	assert.InDelta(t, 42.0, trades[0].Profit, 1e-9)
}

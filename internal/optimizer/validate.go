package optimizer

import (
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/dataset"
)

// Columns names the four required dataset columns.
type Columns struct {
	MAE    string
	Shares string
	Price  string
	Profit string
}

// DefaultColumns matches the headers of the trade journals this tool was
// written for.
func DefaultColumns() Columns {
	return Columns{MAE: "MAE", Shares: "Shares", Price: "Price", Profit: "Profit"}
}

func (c Columns) names() []string {
	return []string{c.MAE, c.Shares, c.Price, c.Profit}
}

// ValidTrades extracts the valid trade set from a table: the rows where MAE,
// Shares, Price and Profit are all numeric. Rows failing coercion on any
// field are excluded entirely, never defaulted.
//
// Fails with MissingColumnError when a required column is absent and with
// EmptyValidDataError when no row survives.
func ValidTrades(table *dataset.Table, cols Columns) ([]Trade, error) {
	var missing []string
	for _, name := range cols.names() {
		if !table.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Missing: missing, Available: table.Headers()}
	}

	mae, _ := table.Numeric(cols.MAE)
	shares, _ := table.Numeric(cols.Shares)
	price, _ := table.Numeric(cols.Price)
	profit, _ := table.Numeric(cols.Profit)

	trades := make([]Trade, 0, table.RowCount())
	for i := 0; i < table.RowCount(); i++ {
		trade := Trade{MAE: mae[i], Shares: shares[i], Price: price[i], Profit: profit[i]}
		if trade.Valid() {
			trades = append(trades, trade)
		}
	}

	if len(trades) == 0 {
		return nil, &EmptyValidDataError{Rows: table.RowCount()}
	}
	return trades, nil
}

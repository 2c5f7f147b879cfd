package optimizer

import (
	"fmt"
	"strings"
)

// MissingColumnError reports required CSV columns absent from the dataset.
type MissingColumnError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required columns: %s (available: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

// EmptyValidDataError means no row carried all four numeric trade fields.
type EmptyValidDataError struct {
	Rows int
}

func (e *EmptyValidDataError) Error() string {
	return fmt.Sprintf("no valid trades in %d rows: MAE, Shares, Price and Profit must all be numeric", e.Rows)
}

// InvalidPercentileError reports a requested percentile outside (0, 100].
type InvalidPercentileError struct {
	Percentile float64
}

func (e *InvalidPercentileError) Error() string {
	return fmt.Sprintf("percentile %.2f outside (0, 100]", e.Percentile)
}

// NoResultsError means selection ran over an empty result sequence.
type NoResultsError struct{}

func (e *NoResultsError) Error() string {
	return "no simulation results to select from"
}

package optimizer

import "math"

// Trade is one historical trade with the fields the simulation needs.
// MAE is the maximum adverse excursion as a percentage of the entry price
// (typically negative); Shares is signed, so short positions carry negative
// share counts.
type Trade struct {
	MAE    float64 `json:"mae"`
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
	Profit float64 `json:"profit"`
}

// Valid reports whether all four fields are present and numeric.
func (t Trade) Valid() bool {
	return !math.IsNaN(t.MAE) && !math.IsNaN(t.Shares) &&
		!math.IsNaN(t.Price) && !math.IsNaN(t.Profit)
}

// BaselineMetrics describes the trade set with no stop loss applied.
type BaselineMetrics struct {
	TotalProfit float64 `json:"total_profit"`
	WinRate     float64 `json:"win_rate"`
	AvgProfit   float64 `json:"avg_profit"`
	TradeCount  int     `json:"trade_count"`
}

// ThresholdResult is the simulated outcome for one requested percentile.
type ThresholdResult struct {
	Percentile      float64 `json:"percentile"`
	MAEThreshold    float64 `json:"mae_threshold"`
	SimulatedProfit float64 `json:"simulated_profit"`
	DeltaVsBaseline float64 `json:"delta_vs_baseline"`
	AvgProfit       float64 `json:"avg_profit"`
	StoppedCount    int     `json:"stopped_count"`
	WinCount        int     `json:"win_count"`
	WinRate         float64 `json:"win_rate"`
}

// Analysis is the full output of one optimizer run.
type Analysis struct {
	Baseline BaselineMetrics   `json:"baseline"`
	Results  []ThresholdResult `json:"results"`
	Best     ThresholdResult   `json:"best"`
}

// ImprovementPct returns the best result's improvement over baseline as a
// percentage of |baseline total profit|. NaN when the baseline is exactly
// zero: the ratio is undefined there, not zero.
func (a *Analysis) ImprovementPct() float64 {
	if a.Baseline.TotalProfit == 0 {
		return math.NaN()
	}
	return a.Best.DeltaVsBaseline / math.Abs(a.Baseline.TotalProfit) * 100
}

// StoppedPct returns the share of trades the best threshold stopped out.
func (a *Analysis) StoppedPct() float64 {
	if a.Baseline.TradeCount == 0 {
		return 0
	}
	return float64(a.Best.StoppedCount) / float64(a.Baseline.TradeCount) * 100
}

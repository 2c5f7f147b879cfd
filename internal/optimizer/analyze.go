package optimizer

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Analyzer runs the stop-loss simulation: baseline metrics, one MAE
// threshold per requested percentile, a replay of every trade under each
// threshold, and selection of the most profitable threshold.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{logger: logger.Named("analyzer")}
}

// Run simulates every requested percentile against the valid trade set.
// Results keep the caller's percentile order regardless of workers; with
// workers > 1 the per-percentile loop fans out, since each percentile only
// reads the shared trade set. Any percentile outside (0, 100] aborts the
// whole run with InvalidPercentileError.
func (a *Analyzer) Run(ctx context.Context, trades []Trade, percentiles []float64, workers int) (*Analysis, error) {
	if len(trades) == 0 {
		return nil, &EmptyValidDataError{}
	}
	for _, p := range percentiles {
		if p <= 0 || p > 100 {
			return nil, &InvalidPercentileError{Percentile: p}
		}
	}

	baseline := Baseline(trades)

	// Ascending sort puts the worst (most negative) excursions first, so the
	// nearest-rank lookup always lands on an excursion that actually occurred.
	sortedMAE := make([]float64, len(trades))
	for i, t := range trades {
		sortedMAE[i] = t.MAE
	}
	sort.Float64s(sortedMAE)

	a.logger.Info("Starting stop-loss simulation",
		zap.Int("trades", len(trades)),
		zap.Int("percentiles", len(percentiles)),
		zap.Int("workers", workers))

	results := make([]ThresholdResult, len(percentiles))
	simulate := func(i int) {
		threshold := thresholdAt(sortedMAE, percentiles[i])
		results[i] = a.replay(trades, percentiles[i], threshold, baseline)
	}

	if workers > 1 {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range percentiles {
			i := i
			g.Go(func() error {
				simulate(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range percentiles {
			simulate(i)
		}
	}

	best, err := SelectBest(results)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Simulation complete",
		zap.Float64("best_percentile", best.Percentile),
		zap.Float64("best_threshold", best.MAEThreshold),
		zap.Float64("best_profit", best.SimulatedProfit))

	return &Analysis{Baseline: baseline, Results: results, Best: best}, nil
}

// Baseline computes the no-stop-loss metrics for the valid trade set.
func Baseline(trades []Trade) BaselineMetrics {
	metrics := BaselineMetrics{TradeCount: len(trades)}
	wins := 0
	for _, t := range trades {
		metrics.TotalProfit += t.Profit
		if t.Profit > 0 {
			wins++
		}
	}
	if metrics.TradeCount > 0 {
		metrics.WinRate = float64(wins) / float64(metrics.TradeCount) * 100
		metrics.AvgProfit = metrics.TotalProfit / float64(metrics.TradeCount)
	}
	return metrics
}

// thresholdAt returns the nearest-rank order statistic of the ascending
// sorted MAE values for percentile p: index = max(0, floor(n*p/100) - 1).
func thresholdAt(sortedMAE []float64, p float64) float64 {
	idx := int(float64(len(sortedMAE))*p/100.0) - 1
	if idx < 0 {
		idx = 0
	}
	return sortedMAE[idx]
}

// replay simulates one threshold over every trade. A trade whose excursion is
// strictly worse (more negative) than the threshold is stopped out and
// contributes shares*price*threshold/100; every other trade keeps its actual
// profit. A stopped trade still counts as a win when its stop amount is
// positive — a short stopped at a favorable threshold books a gain, and that
// is deliberate.
func (a *Analyzer) replay(trades []Trade, percentile, threshold float64, baseline BaselineMetrics) ThresholdResult {
	result := ThresholdResult{Percentile: percentile, MAEThreshold: threshold}

	for _, t := range trades {
		outcome := t.Profit
		if t.MAE < threshold {
			outcome = t.Shares * t.Price * threshold / 100.0
			result.StoppedCount++
		}
		result.SimulatedProfit += outcome
		if outcome > 0 {
			result.WinCount++
		}
	}

	result.DeltaVsBaseline = result.SimulatedProfit - baseline.TotalProfit
	if baseline.TradeCount > 0 {
		result.AvgProfit = result.SimulatedProfit / float64(baseline.TradeCount)
		result.WinRate = float64(result.WinCount) / float64(baseline.TradeCount) * 100
	}
	return result
}

// SelectBest returns the result with the maximum simulated profit. Ties keep
// the earliest result, so output is stable in the requested percentile order.
func SelectBest(results []ThresholdResult) (ThresholdResult, error) {
	if len(results) == 0 {
		return ThresholdResult{}, &NoResultsError{}
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.SimulatedProfit > best.SimulatedProfit {
			best = r
		}
	}
	return best, nil
}

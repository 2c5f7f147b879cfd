package report

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/optimizer"
)

func sampleAnalysis() *optimizer.Analysis {
	results := []optimizer.ThresholdResult{
		{Percentile: 50, MAEThreshold: -5.0, SimulatedProfit: -265, DeltaVsBaseline: 0, StoppedCount: 0, WinCount: 1, WinRate: 100.0 / 3},
		{Percentile: 100, MAEThreshold: -0.5, SimulatedProfit: -35, DeltaVsBaseline: 230, StoppedCount: 2, WinCount: 1, WinRate: 100.0 / 3},
	}
	return &optimizer.Analysis{
		Baseline: optimizer.BaselineMetrics{TotalProfit: -265, WinRate: 100.0 / 3, AvgProfit: -265.0 / 3, TradeCount: 3},
		Results:  results,
		Best:     results[1],
	}
}

func TestExportCSV(t *testing.T) {
	exporter := NewResultsExporter(zap.NewNop())
	outputDir := t.TempDir()

	path, err := exporter.Export(sampleAnalysis(), ExportOptions{Format: FormatCSV, OutputDir: outputDir})
	require.NoError(t, err)
	assert.Contains(t, path, outputDir)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per result")
	assert.Equal(t, csvHeaders(), rows[0])
	assert.Equal(t, "50.00", rows[1][0])
	assert.Equal(t, "-0.5000", rows[2][1])
	assert.Equal(t, "2", rows[2][5])
}

func TestExportJSON(t *testing.T) {
	exporter := NewResultsExporter(zap.NewNop())

	path, err := exporter.Export(sampleAnalysis(), ExportOptions{Format: FormatJSON, OutputDir: t.TempDir()})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		ResultCount int `json:"result_count"`
		Baseline    struct {
			TotalProfit float64 `json:"total_profit"`
			TradeCount  int     `json:"trade_count"`
		} `json:"baseline"`
		Results []struct {
			Percentile   float64 `json:"percentile"`
			MAEThreshold float64 `json:"mae_threshold"`
		} `json:"results"`
		Best struct {
			Percentile float64 `json:"percentile"`
		} `json:"best"`
		ImprovementPct *float64 `json:"improvement_pct"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, 2, decoded.ResultCount)
	assert.InDelta(t, -265.0, decoded.Baseline.TotalProfit, 1e-9)
	assert.Equal(t, 3, decoded.Baseline.TradeCount)
	require.Len(t, decoded.Results, 2)
	assert.InDelta(t, 100.0, decoded.Results[1].Percentile, 1e-9)
	assert.InDelta(t, 100.0, decoded.Best.Percentile, 1e-9)
	require.NotNil(t, decoded.ImprovementPct)
	assert.InDelta(t, 230.0/265.0*100, *decoded.ImprovementPct, 1e-9)
}

func TestExportJSONZeroBaselineImprovementIsNull(t *testing.T) {
	a := sampleAnalysis()
	a.Baseline.TotalProfit = 0
	exporter := NewResultsExporter(zap.NewNop())

	path, err := exporter.Export(a, ExportOptions{Format: FormatJSON, OutputDir: t.TempDir()})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "null", string(decoded["improvement_pct"]),
		"undefined improvement must serialize as null, not crash or zero")
}

func TestExportUnsupportedFormat(t *testing.T) {
	exporter := NewResultsExporter(zap.NewNop())

	_, err := exporter.Export(sampleAnalysis(), ExportOptions{Format: "xml", OutputDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestExportNoResults(t *testing.T) {
	exporter := NewResultsExporter(zap.NewNop())

	_, err := exporter.Export(&optimizer.Analysis{}, ExportOptions{Format: FormatJSON, OutputDir: t.TempDir()})
	require.Error(t, err)
}

func TestNullableFloat(t *testing.T) {
	data, err := json.Marshal(nullableFloat(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(nullableFloat(12.5))
	require.NoError(t, err)
	assert.Equal(t, "12.5", string(data))
}

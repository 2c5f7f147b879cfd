package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/optimizer"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format    ExportFormat
	OutputDir string
}

// ResultsExporter writes a run's analysis to disk
type ResultsExporter struct {
	logger *zap.Logger
}

// NewResultsExporter creates a new results exporter
func NewResultsExporter(logger *zap.Logger) *ResultsExporter {
	return &ResultsExporter{
		logger: logger.Named("export"),
	}
}

// Export writes the analysis in the requested format and returns the path of
// the written file.
func (re *ResultsExporter) Export(a *optimizer.Analysis, options ExportOptions) (string, error) {
	if len(a.Results) == 0 {
		return "", fmt.Errorf("no results to export")
	}

	filename := re.generateFilename(options)
	outputPath := filepath.Join(options.OutputDir, filename)

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	switch options.Format {
	case FormatCSV:
		err = re.exportToCSV(a, outputPath)
	case FormatJSON:
		err = re.exportToJSON(a, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}

	if err != nil {
		return "", err
	}

	re.logger.Info("Results exported",
		zap.String("file", outputPath),
		zap.Int("count", len(a.Results)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

// generateFilename creates a timestamped filename for the export
func (re *ResultsExporter) generateFilename(options ExportOptions) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("stoploss_results_%s.%s", timestamp, options.Format)
}

func csvHeaders() []string {
	return []string{
		"percentile", "mae_threshold", "simulated_profit",
		"delta_vs_baseline", "avg_profit", "stopped_count", "win_count", "win_rate",
	}
}

func csvRecord(r optimizer.ThresholdResult) []string {
	return []string{
		strconv.FormatFloat(r.Percentile, 'f', 2, 64),
		strconv.FormatFloat(r.MAEThreshold, 'f', 4, 64),
		strconv.FormatFloat(r.SimulatedProfit, 'f', 2, 64),
		strconv.FormatFloat(r.DeltaVsBaseline, 'f', 2, 64),
		strconv.FormatFloat(r.AvgProfit, 'f', 2, 64),
		strconv.Itoa(r.StoppedCount),
		strconv.Itoa(r.WinCount),
		strconv.FormatFloat(r.WinRate, 'f', 2, 64),
	}
}

// exportToCSV writes one row per simulated threshold
func (re *ResultsExporter) exportToCSV(a *optimizer.Analysis, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range a.Results {
		if err := writer.Write(csvRecord(result)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	return nil
}

// nullableFloat marshals NaN as JSON null instead of failing the encode.
type nullableFloat float64

func (f nullableFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// exportToJSON writes the full analysis with export metadata
func (re *ResultsExporter) exportToJSON(a *optimizer.Analysis, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := struct {
		ExportTime     time.Time                   `json:"export_time"`
		ResultCount    int                         `json:"result_count"`
		Baseline       optimizer.BaselineMetrics   `json:"baseline"`
		Results        []optimizer.ThresholdResult `json:"results"`
		Best           optimizer.ThresholdResult   `json:"best"`
		ImprovementPct nullableFloat               `json:"improvement_pct"`
	}{
		ExportTime:     time.Now(),
		ResultCount:    len(a.Results),
		Baseline:       a.Baseline,
		Results:        a.Results,
		Best:           a.Best,
		ImprovementPct: nullableFloat(a.ImprovementPct()),
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

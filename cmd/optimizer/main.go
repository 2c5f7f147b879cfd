// ====================================
// File: cmd/optimizer/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/config"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/dataset"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/logging"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/optimizer"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/report"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "path to JSON config file")
	thresholds := flag.String("thresholds", "", "comma-separated percentiles to test, overrides config")
	exportFormat := flag.String("export", "", "also write results to a file: csv or json")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath, *thresholds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.DebugLogging = true
	}
	// Positional CSV path overrides the configured one.
	if flag.NArg() > 0 {
		cfg.InputPath = flag.Arg(0)
	}

	logger, err := logging.Init(cfg.DebugLogging, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *exportFormat, logger); err != nil {
		logger.Error("Analysis failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "\nERROR: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path, thresholdFlag string) (*config.Config, error) {
	// The config file is optional unless the user pointed at one explicitly.
	required := path != "configs/config.json"
	cfg, err := config.LoadConfig(path, required)
	if err != nil {
		return nil, err
	}
	if thresholdFlag != "" {
		parsed, err := config.ParseThresholds(thresholdFlag)
		if err != nil {
			return nil, err
		}
		cfg.Thresholds = parsed
	}
	return cfg, nil
}

func run(cfg *config.Config, exportFormat string, logger *zap.Logger) error {
	ctx := context.Background()

	logger.Info("Loading trade data", zap.String("file", cfg.InputPath))
	table, err := dataset.LoadCSV(cfg.InputPath, logger)
	if err != nil {
		return err
	}

	trades, err := optimizer.ValidTrades(table, optimizer.Columns{
		MAE:    cfg.Columns.MAE,
		Shares: cfg.Columns.Shares,
		Price:  cfg.Columns.Price,
		Profit: cfg.Columns.Profit,
	})
	if err != nil {
		return err
	}

	percentiles := append([]float64(nil), cfg.Thresholds...)
	sort.Float64s(percentiles)

	analysis, err := optimizer.NewAnalyzer(logger).Run(ctx, trades, percentiles, cfg.Workers)
	if err != nil {
		return err
	}

	report.NewRenderer(os.Stdout).Render(analysis)

	if exportFormat != "" {
		exporter := report.NewResultsExporter(logger)
		path, err := exporter.Export(analysis, report.ExportOptions{
			Format:    report.ExportFormat(exportFormat),
			OutputDir: cfg.OutputDir,
		})
		if err != nil {
			return err
		}
		fmt.Printf("\nResults written to %s\n", path)
	}

	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: optimizer [flags] [csv_path]

Finds the profit-maximizing stop loss by replaying recorded trades against
MAE thresholds taken at percentiles of the adverse-excursion distribution.

Required CSV columns (names configurable):
    MAE         Maximum Adverse Excursion as %% (e.g. -2.56)
    Shares      Number of shares traded (negative for shorts)
    Price       Entry price
    Profit      Actual profit/loss

Flags:
`)
	flag.PrintDefaults()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/config"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/dataset"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/logging"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/optimizer"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "path to JSON config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath, *configPath != "configs/config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.InputPath = flag.Arg(0)
	}

	// The TUI owns the terminal; log to file only.
	logger, err := logging.InitFileOnly(cfg.DebugLogging, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	analysis, err := analyze(cfg, logger)
	if err != nil {
		logger.Error("Analysis failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(ui.NewBrowser(analysis, cfg.OutputDir, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("UI error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func analyze(cfg *config.Config, logger *zap.Logger) (*optimizer.Analysis, error) {
	table, err := dataset.LoadCSV(cfg.InputPath, logger)
	if err != nil {
		return nil, err
	}

	trades, err := optimizer.ValidTrades(table, optimizer.Columns{
		MAE:    cfg.Columns.MAE,
		Shares: cfg.Columns.Shares,
		Price:  cfg.Columns.Price,
		Profit: cfg.Columns.Profit,
	})
	if err != nil {
		return nil, err
	}

	percentiles := append([]float64(nil), cfg.Thresholds...)
	sort.Float64s(percentiles)

	return optimizer.NewAnalyzer(logger).Run(context.Background(), trades, percentiles, cfg.Workers)
}

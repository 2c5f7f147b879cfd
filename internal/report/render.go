// ================================
// File: internal/report/render.go
// ================================
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/optimizer"
)

// Console color palette
var (
	Green  = lipgloss.Color("#2AFFAA") // Positive delta / best pick
	Red    = lipgloss.Color("#FF5555") // Negative delta
	Cyan   = lipgloss.Color("#00E5FF") // Banner / headers
	Base01 = lipgloss.Color("#6C7280") // Muted separators
)

var (
	bannerStyle    = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	headerStyle    = lipgloss.NewStyle().Bold(true)
	positiveStyle  = lipgloss.NewStyle().Foreground(Green)
	negativeStyle  = lipgloss.NewStyle().Foreground(Red)
	bestTitleStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	separatorStyle = lipgloss.NewStyle().Foreground(Base01)
)

// Renderer writes a run's analysis as a formatted console report.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render writes the baseline block, the per-threshold table and the
// best-setting summary.
func (r *Renderer) Render(a *optimizer.Analysis) {
	separator := separatorStyle.Render(strings.Repeat("=", 100))

	fmt.Fprintln(r.out, separator)
	fmt.Fprintln(r.out, bannerStyle.Render("STOP LOSS OPTIMIZER"))
	fmt.Fprintln(r.out, separator)

	fmt.Fprintf(r.out, "\nAnalyzing %d trades with valid data\n", a.Baseline.TradeCount)
	fmt.Fprintln(r.out, "\nBaseline (No Stop Loss):")
	fmt.Fprintf(r.out, "  Total Profit: $%.2f\n", a.Baseline.TotalProfit)
	fmt.Fprintf(r.out, "  Win Rate: %.1f%%\n", a.Baseline.WinRate)
	fmt.Fprintf(r.out, "  Avg Profit/Trade: $%.2f\n", a.Baseline.AvgProfit)

	fmt.Fprintln(r.out, "\n"+separator)
	fmt.Fprintln(r.out, bannerStyle.Render("STOP LOSS SIMULATION RESULTS"))
	fmt.Fprintln(r.out, separator)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf(
		"%-10s %-10s %-10s %-10s %-15s %-15s %-12s %-8s",
		"MAE %", "Thresh %", "Trades", "Stopped", "Total $", "Δ vs Base", "$/Trade", "Win%")))
	fmt.Fprintln(r.out, separatorStyle.Render(strings.Repeat("-", 95)))

	for _, result := range a.Results {
		deltaStyle := negativeStyle
		if result.DeltaVsBaseline > 0 {
			deltaStyle = positiveStyle
		}
		fmt.Fprintf(r.out, "%9.2f%% %-10.1f %-10d %-10d %s %s %11.2f %7.1f%%\n",
			result.MAEThreshold,
			result.Percentile,
			a.Baseline.TradeCount,
			result.StoppedCount,
			deltaStyle.Render(fmt.Sprintf("%14.2f", result.SimulatedProfit)),
			deltaStyle.Render(fmt.Sprintf("%+14.2f", result.DeltaVsBaseline)),
			result.AvgProfit,
			result.WinRate)
	}

	fmt.Fprintln(r.out, "\n"+separator)
	fmt.Fprintln(r.out, bestTitleStyle.Render("BEST STOP LOSS SETTING:"))
	fmt.Fprintf(r.out, "  MAE Threshold: %.2f%%\n", a.Best.MAEThreshold)
	fmt.Fprintf(r.out, "  Percentile: %.1f%%\n", a.Best.Percentile)
	fmt.Fprintf(r.out, "  Total Profit: %s\n", positiveStyle.Render(fmt.Sprintf("$%.2f", a.Best.SimulatedProfit)))
	fmt.Fprintf(r.out, "  Improvement: %s (%s)\n",
		positiveStyle.Render(fmt.Sprintf("$%+.2f", a.Best.DeltaVsBaseline)),
		formatImprovementPct(a.ImprovementPct()))
	fmt.Fprintf(r.out, "  Trades Stopped: %d (%.1f%%)\n", a.Best.StoppedCount, a.StoppedPct())
	fmt.Fprintf(r.out, "  Win Rate: %.1f%%\n", a.Best.WinRate)
	fmt.Fprintln(r.out, separator)
}

// formatImprovementPct renders the relative improvement, or "n/a" when the
// baseline profit is zero and the ratio is undefined.
func formatImprovementPct(pct float64) string {
	if math.IsNaN(pct) {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", pct)
}

// Package ui implements the interactive results browser: a scrollable table
// of simulated thresholds with the best setting pinned in the footer.
package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/optimizer"
	"github.com/Mat-eo-H/Simple-Stop-Loss-Optimizer/internal/report"
)

// BrowserModel is the bubbletea model for the results browser
type BrowserModel struct {
	analysis *optimizer.Analysis
	exporter *report.ResultsExporter
	keyMap   KeyMap

	outputDir   string
	bestIndex   int
	selectedRow int
	width       int
	height      int
	statusLine  string

	// Styling
	titleStyle    lipgloss.Style
	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	selectedStyle lipgloss.Style
	bestStyle     lipgloss.Style
	statusStyle   lipgloss.Style
	positiveStyle lipgloss.Style
	negativeStyle lipgloss.Style
	helpStyle     lipgloss.Style
}

// NewBrowser creates a results browser over a finished analysis
func NewBrowser(a *optimizer.Analysis, outputDir string, logger *zap.Logger) *BrowserModel {
	bestIndex := 0
	for i, r := range a.Results {
		if r == a.Best {
			bestIndex = i
			break
		}
	}

	return &BrowserModel{
		analysis:  a,
		exporter:  report.NewResultsExporter(logger),
		keyMap:    DefaultKeyMap(),
		outputDir: outputDir,
		bestIndex: bestIndex,
		// Start with the winning row highlighted.
		selectedRow: bestIndex,

		titleStyle: lipgloss.NewStyle().
			Foreground(report.Cyan).
			Bold(true).
			Margin(1, 0, 0, 0),

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Padding(0, 1),

		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1B1D23")).
			Background(report.Cyan).
			Padding(0, 1),

		bestStyle: lipgloss.NewStyle().
			Foreground(report.Green).
			Bold(true),

		statusStyle: lipgloss.NewStyle().
			Foreground(report.Green).
			Padding(0, 1),

		positiveStyle: lipgloss.NewStyle().Foreground(report.Green),
		negativeStyle: lipgloss.NewStyle().Foreground(report.Red),

		helpStyle: lipgloss.NewStyle().
			Foreground(report.Base01).
			Padding(1, 1, 0, 1),
	}
}

// Init implements tea.Model
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Up):
			if m.selectedRow > 0 {
				m.selectedRow--
			}

		case key.Matches(msg, m.keyMap.Down):
			if m.selectedRow < len(m.analysis.Results)-1 {
				m.selectedRow++
			}

		case key.Matches(msg, m.keyMap.Top):
			m.selectedRow = 0

		case key.Matches(msg, m.keyMap.Bottom):
			m.selectedRow = len(m.analysis.Results) - 1

		case key.Matches(msg, m.keyMap.Export):
			path, err := m.exporter.Export(m.analysis, report.ExportOptions{
				Format:    report.FormatJSON,
				OutputDir: m.outputDir,
			})
			if err != nil {
				m.statusLine = "export failed: " + err.Error()
			} else {
				m.statusLine = "exported to " + path
			}
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("STOP LOSS OPTIMIZER"))
	b.WriteString("\n")
	b.WriteString(m.rowStyle.Render(fmt.Sprintf(
		"Baseline: %d trades · total $%.2f · win %.1f%% · avg $%.2f",
		m.analysis.Baseline.TradeCount,
		m.analysis.Baseline.TotalProfit,
		m.analysis.Baseline.WinRate,
		m.analysis.Baseline.AvgProfit)))
	b.WriteString("\n\n")

	b.WriteString(m.headerStyle.Render(fmt.Sprintf(
		"%-9s %-10s %-9s %-14s %-14s %-8s",
		"Pctile", "MAE %", "Stopped", "Total $", "Δ vs Base", "Win%")))
	b.WriteString("\n")

	for i, r := range m.analysis.Results {
		line := fmt.Sprintf("%-9.1f %-10.2f %-9d %-14.2f %+-14.2f %-8.1f",
			r.Percentile, r.MAEThreshold, r.StoppedCount,
			r.SimulatedProfit, r.DeltaVsBaseline, r.WinRate)

		style := m.rowStyle
		if r.DeltaVsBaseline > 0 {
			style = style.Inherit(m.positiveStyle)
		}
		if i == m.selectedRow {
			style = m.selectedStyle
		}
		b.WriteString(style.Render(line))
		if i == m.bestIndex {
			b.WriteString(m.bestStyle.Render(" ◀ best"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.bestStyle.Render(fmt.Sprintf(
		"Best: MAE %.2f%% at p%.1f → $%.2f (%s vs baseline)",
		m.analysis.Best.MAEThreshold,
		m.analysis.Best.Percentile,
		m.analysis.Best.SimulatedProfit,
		m.formatImprovement())))

	if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusStyle.Render(m.statusLine))
	}

	b.WriteString(m.helpStyle.Render("↑/↓ move · g/G top/bottom · e export json · q quit"))
	return b.String()
}

func (m *BrowserModel) formatImprovement() string {
	pct := m.analysis.ImprovementPct()
	if math.IsNaN(pct) {
		return fmt.Sprintf("$%+.2f, n/a", m.analysis.Best.DeltaVsBaseline)
	}
	return fmt.Sprintf("$%+.2f, %+.1f%%", m.analysis.Best.DeltaVsBaseline, pct)
}

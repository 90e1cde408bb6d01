package dashboard

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/components"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	sections := []string{
		m.renderTitle(),
		m.renderStatusCard(),
		m.renderSummaryCard(),
		m.renderDailyChart(),
		m.renderCategoryCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the dashboard title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Abyssal Tracker")
	subtitle := styles.HelpStyle.Render("Run detection and profit analysis for abyssal deadspace")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

// renderStatusCard renders the live tracker status.
func (m *Model) renderStatusCard() string {
	tr := m.state.GetTracker()

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Live Tracker")), "")

	if tr.File == "" {
		emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
		rows = append(rows, fmt.Sprintf("  %s %s", emptyIcon,
			styles.HelpStyle.Render("Waiting for a Local chat log...")))
		rows = append(rows, "")
		rows = append(rows, styles.InfoTextStyle.Render("  ╰─▶ Start the EVE client or check LOGS_PATH"))
		return styles.CardStyle.Width(m.cardWidth()).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	rows = append(rows, m.renderStatusRow("Character", tr.Character))
	rows = append(rows, m.renderStatusRow("Log File", filepath.Base(tr.File)))

	location := tr.Location.CurrentSystem
	if location == "" {
		location = "-"
	}
	if tr.Location.PreviousSystem != "" {
		location += styles.HelpStyle.Render("  (from " + tr.Location.PreviousSystem + ")")
	}
	rows = append(rows, m.renderStatusRow("System", location))

	status := styles.SuccessTextStyle.Render("● In known space")
	if tr.InRun {
		status = components.FormatInRunBadge(tr.RunStart)
	}
	rows = append(rows, m.renderStatusRow("Status", status))
	rows = append(rows, m.renderStatusRow("Session Runs", fmt.Sprintf("%d", tr.SessionRuns)))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderStatusRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(14).
		Foreground(styles.TextMuted)

	return "  " + labelStyle.Render(label+":") + " " + value
}

// renderSummaryCard renders the overall aggregate figures.
func (m *Model) renderSummaryCard() string {
	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("Σ")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Overall")), "")

	analysis := m.state.GetAnalysis()
	if !analysis.HasData() {
		rows = append(rows, styles.HelpStyle.Render("  No priced runs yet."))
		rows = append(rows, styles.HelpStyle.Render("  Press 'i' to import history, then paste loot on the Runs tab."))
		return styles.CardStyle.Width(m.cardWidth()).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	o := analysis.Overall
	rows = append(rows, m.renderStatusRow("Runs", fmt.Sprintf("%d", o.RunCount)))
	rows = append(rows, m.renderStatusRow("Avg Profit", components.FormatISKStyled(o.AvgNetProfit)))
	rows = append(rows, m.renderStatusRow("Avg Duration", fmt.Sprintf("%.1f min", o.AvgDurationMin)))
	rows = append(rows, m.renderStatusRow("Avg Rate", components.FormatISKStyled(o.AvgRatePerHour)+styles.HelpStyle.Render("/hr")))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderDailyChart renders the daily average profit chart.
func (m *Model) renderDailyChart() string {
	cardWidth := m.cardWidth()

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("📈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Daily Average Profit")), "")

	analysis := m.state.GetAnalysis()
	if !analysis.HasData() || len(analysis.Daily) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No daily data available"))
	} else {
		dates := make([]string, 0, len(analysis.Daily))
		for date := range analysis.Daily {
			dates = append(dates, date)
		}
		sort.Strings(dates)

		data := make([]float64, len(dates))
		for i, date := range dates {
			data[i] = analysis.Daily[date].AvgNetProfit / 1e6
		}

		chartWidth := max(cardWidth-12, 30)
		chartHeight := 8

		chart := components.RenderLineChart(data, chartWidth, chartHeight,
			fmt.Sprintf("%s → %s (m ISK/run)", dates[0], dates[len(dates)-1]))

		for _, line := range strings.Split(chart, "\n") {
			rows = append(rows, "  "+line)
		}

		best := bestDay(analysis.Daily)
		if best != "" {
			rows = append(rows, "")
			rows = append(rows, fmt.Sprintf("  Best day: %s (%s avg)",
				lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render(best),
				components.FormatISK(analysis.Daily[best].AvgNetProfit)))
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func bestDay(daily map[string]*models.DailySummary) string {
	best := ""
	bestProfit := 0.0
	for date, summary := range daily {
		if best == "" || summary.AvgNetProfit > bestProfit {
			best = date
			bestProfit = summary.AvgNetProfit
		}
	}
	return best
}

// renderCategoryCard renders the per-category profit breakdown.
func (m *Model) renderCategoryCard() string {
	cardWidth := m.cardWidth()

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◆")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("By Filament")), "")

	analysis := m.state.GetAnalysis()
	if !analysis.HasData() || len(analysis.Overall.Categories) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No categorized runs yet"))
	} else {
		categories := analysis.Overall.Categories

		maxProfit := 0.0
		for _, c := range categories {
			if c.AvgNetProfit > maxProfit {
				maxProfit = c.AvgNetProfit
			}
		}

		for _, c := range categories {
			label := fmt.Sprintf("%s %s (%d)", c.Tier, c.Weather, c.RunCount)
			rows = append(rows, "  "+m.profitBar.View(label, c.AvgNetProfit, maxProfit, cardWidth-8))
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

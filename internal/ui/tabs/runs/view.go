package runs

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/components"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/styles"
)

// View renders the runs tab.
func (m *Model) View() string {
	runs := m.state.GetRuns()

	var sections []string
	sections = append(sections, m.renderTitle(len(runs)))

	if len(runs) == 0 {
		sections = append(sections, m.renderEmpty())
	} else {
		sections = append(sections, m.renderRunTable(runs))
	}

	if m.editing {
		sections = append(sections, m.renderEditor())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle(count int) string {
	title := styles.TitleStyle.Render("Runs")
	subtitle := styles.HelpStyle.Render(
		fmt.Sprintf("%d recorded runs. Enter to edit, 'i' to import from log history.", count))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.HelpStyle.Render("No runs recorded yet."),
		styles.HelpStyle.Render("Complete a run with the tracker live, or press 'i' to import log history."),
	)
	return styles.CardStyle.Width(max(m.width-6, 40)).Render(content)
}

// renderRunTable renders the stored runs with per-run metrics when priced.
func (m *Model) renderRunTable(runs []models.RunRecord) string {
	cardWidth := max(m.width-6, 60)
	selected := m.state.GetSelectedRunIndex()
	metrics := m.metricsByID()

	var rows []string

	header := fmt.Sprintf("  %-12s %-15s %7s  %-22s %12s",
		"Date", "Window", "Dur", "Filament", "Profit")
	rows = append(rows, styles.TableHeaderStyle.Render(header))

	for i, run := range runs {
		category := run.Category
		if category == "" {
			category = styles.HelpStyle.Render("unclassified")
		}

		profit := styles.HelpStyle.Render("unpriced")
		if metric, ok := metrics[run.ID]; ok && run.ItemText != "" {
			profit = styles.GetProfitStyle(metric.NetProfit).Render(components.FormatISK(metric.NetProfit))
		}

		line := fmt.Sprintf("%-12s %-15s %6.0fm  %-22s %12s",
			run.Date(),
			components.FormatRunWindow(run.Start, run.End),
			run.DurationMinutes(),
			category,
			profit,
		)

		if i == selected {
			rows = append(rows, styles.SelectedListItemStyle.Render(line))
		} else {
			rows = append(rows, "  "+line)
		}
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// metricsByID indexes the latest analysis metrics by run ID.
func (m *Model) metricsByID() map[int64]models.RunMetrics {
	out := make(map[int64]models.RunMetrics)
	analysis := m.state.GetAnalysis()
	if !analysis.HasData() {
		return out
	}
	for _, cr := range analysis.Runs {
		out[cr.Run.ID] = cr.Metrics
	}
	return out
}

// renderEditor renders the category and loot input fields.
func (m *Model) renderEditor() string {
	cardWidth := max(m.width-6, 60)

	categoryBorder := styles.BlurredBorderStyle
	itemsBorder := styles.BlurredBorderStyle
	if m.focused == fieldCategory {
		categoryBorder = styles.FocusedBorderStyle
	} else {
		itemsBorder = styles.FocusedBorderStyle
	}

	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	rows := []string{
		styles.CardTitleStyle.Render("Edit Run"),
		"",
		labelStyle.Render("Filament (e.g. \"T5 Electrical\")"),
		categoryBorder.Render(m.categoryInput.View()),
		"",
		labelStyle.Render("Acquired items (\"name*qty; name; ...\")"),
		itemsBorder.Render(m.itemsInput.View()),
		"",
		styles.HelpStyle.Render("tab switch field · enter save · esc cancel"),
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

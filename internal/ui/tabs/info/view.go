package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/veyl/abyssal-tracker-tui/internal/config"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/styles"
	"github.com/veyl/abyssal-tracker-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	cardWidth := m.width - 6
	if cardWidth < 50 {
		cardWidth = 50
	}
	if cardWidth > 80 {
		cardWidth = 80
	}
	return cardWidth
}

// renderConfigCard renders the configuration paths card.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		rows = append(rows, m.renderConfigRow("Chat Logs", m.config.LogsPath))
		character := m.config.CharacterName
		if character == "" {
			character = "(latest log wins)"
		}
		rows = append(rows, m.renderConfigRow("Character", character))
		language := m.config.LogLanguage
		if language == "" {
			language = "(detected from log)"
		}
		rows = append(rows, m.renderConfigRow("Log Language", language))
		rows = append(rows, m.renderConfigRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderConfigRow("Type ID Cache", m.config.TypeIDCachePath))
		rows = append(rows, m.renderConfigRow("Poll Interval", m.config.PollInterval.String()))
		rows = append(rows, m.renderConfigRow("Market Region", fmt.Sprintf("%d", m.config.RegionID)))
		if m.config.RegionID == config.DefaultRegionID {
			rows = append(rows, m.renderConfigRow("", styles.HelpStyle.Render("The Forge (Jita)")))
		}
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	if label == "" {
		return labelStyle.Render("") + " " + value
	}
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Abyssal Tracker TUI"))
	rows = append(rows, "")

	ver, commit, date := version.Get()
	rows = append(rows, m.renderConfigRow("Version", ver))
	rows = append(rows, m.renderConfigRow("Git Commit", commit))
	rows = append(rows, m.renderConfigRow("Build Date", date))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))
	rows = append(rows, "")

	runCount := m.state.GetRunCount()
	rows = append(rows, fmt.Sprintf("Recorded runs: %s", styles.InfoTextStyle.Render(fmt.Sprintf("%d", runCount))))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

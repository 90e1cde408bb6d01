package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/veyl/abyssal-tracker-tui/internal/logger"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/styles"
)

// ProfitBar renders a gradient bar scaled against the best value in a set,
// used for the per-category breakdown on the dashboard.
type ProfitBar struct {
	progress progress.Model
}

// NewProfitBar creates a profit bar with gradient colors.
func NewProfitBar(width int) ProfitBar {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)

	return ProfitBar{progress: p}
}

// View renders the bar for value scaled against maxValue, with the formatted
// ISK figure on the right.
func (p ProfitBar) View(label string, value, maxValue float64, width int) string {
	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(22).
		Render(label)

	valueStr := styles.GetProfitStyle(value).
		Width(12).
		Align(lipgloss.Right).
		Render(FormatISK(value))

	barWidth := width - 22 - 12 - 4
	if barWidth < 10 {
		barWidth = 10
	}
	p.progress.Width = barWidth

	ratio := 0.0
	if maxValue > 0 && value > 0 {
		ratio = value / maxValue
	}
	bar := p.progress.ViewAs(ratio)

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, " ", bar, " ", valueStr)
}

// RenderGradientBar renders just the bar part with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var barChars []string
	for i := 0; i < width; i++ {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#ff6b6b", "#51cf66", t)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			barChars = append(barChars, style.Render("█"))
		} else {
			style := lipgloss.NewStyle().Foreground(styles.Subtle)
			barChars = append(barChars, style.Render("░"))
		}
	}

	return strings.Join(barChars, "")
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}

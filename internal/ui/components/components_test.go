package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Loading")
	if s.Label() != "Loading" {
		t.Errorf("Label = %s, want Loading", s.Label())
	}

	// Test View
	view := s.View()
	if view == "" {
		t.Error("View returned empty")
	}

	// Test ViewWithLabel
	view = s.ViewWithLabel()
	if view == "" {
		t.Error("ViewWithLabel returned empty")
	}

	// Test Init
	if s.Init() == nil {
		t.Error("Init should return command")
	}

	// Test Update
	m, cmd := s.Update(spinner.TickMsg{})
	_ = m
	if cmd == nil {
		t.Error("Update should return command for tick")
	}

	// Test Tick
	if s.Tick() == nil {
		t.Error("Tick should return command")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if view == "" {
		t.Error("RenderSpinnerCentered returned empty")
	}
}

func TestRenderLineChart(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	s := RenderLineChart(data, 20, 5, "Test")
	if s == "" {
		t.Error("RenderLineChart returned empty")
	}
}

func TestRenderBarChart(t *testing.T) {
	values := []float64{10, 20}
	labels := []string{"A", "B"}
	s := RenderBarChart(values, labels, 20)
	if s == "" {
		t.Error("RenderBarChart returned empty")
	}
}

func TestRenderSparkline(t *testing.T) {
	data := []float64{1, 2, 3}
	s := RenderSparkline(data, 10)
	if s == "" {
		t.Error("RenderSparkline returned empty")
	}
}

func TestFormatISK(t *testing.T) {
	tests := []struct {
		isk  float64
		want string
	}{
		{1_250_000_000, "1.2b ISK"},
		{45_300_000, "45.3m ISK"},
		{128_000, "128.0k ISK"},
		{950, "950 ISK"},
		{-2_500_000, "-2.5m ISK"},
		{0, "0 ISK"},
	}
	for _, tt := range tests {
		if got := FormatISK(tt.isk); got != tt.want {
			t.Errorf("FormatISK(%v) = %q, want %q", tt.isk, got, tt.want)
		}
	}
}

func TestProfitBarView(t *testing.T) {
	bar := NewProfitBar(30)
	view := bar.View("T5 Electrical", 42_000_000, 60_000_000, 80)
	if !strings.Contains(view, "42.0m ISK") {
		t.Errorf("bar missing value: %q", view)
	}
}

func TestRenderGradientBar(t *testing.T) {
	if RenderGradientBar(50, 10) == "" {
		t.Error("RenderGradientBar returned empty")
	}
	if RenderGradientBar(50, 0) != "" {
		t.Error("zero width should render empty")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "A", Color: lipgloss.Color("#ffffff")},
	}
	s := RenderLegend(items)
	if s == "" {
		t.Error("RenderLegend returned empty")
	}
}

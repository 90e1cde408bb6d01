package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veyl/abyssal-tracker-tui/internal/app"
	"github.com/veyl/abyssal-tracker-tui/internal/models"
	"github.com/veyl/abyssal-tracker-tui/internal/tracker"
)

func TestNew(t *testing.T) {
	state := app.NewState()
	m := New(state)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	state := app.NewState()
	m := New(state)
	if m.Init() == nil {
		t.Error("Init returned nil")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	m := New(state)
	m.SetSize(100, 40)

	// View with no data
	view := m.View()
	if view == "" {
		t.Error("View returned empty string")
	}
	if !strings.Contains(view, "Waiting for a Local chat log") {
		t.Error("View should show the waiting hint before a file is attached")
	}

	state.SetTrackerFile("/logs/Local_20250601_100000_100.txt", "Kirin Sohn")
	state.SetLocation(tracker.LocationInfo{CurrentSystem: "Jita", PreviousSystem: "Perimeter"})

	view = m.View()
	if !strings.Contains(view, "Kirin Sohn") {
		t.Error("View should contain the tracked character")
	}
	if !strings.Contains(view, "Jita") {
		t.Error("View should contain the current system")
	}
}

func TestModel_ViewWithAnalysis(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, models.ReportingZone)
	run := models.ComputedRun{
		Run:     models.RunRecord{ID: 1, Start: start, End: start.Add(20 * time.Minute), Category: "T5 Electrical"},
		Metrics: models.RunMetrics{NetProfit: 42_000_000, RatePerHour: 126_000_000},
	}
	state.SetAnalysis(&models.AnalysisResult{
		Runs: []models.ComputedRun{run},
		Daily: map[string]*models.DailySummary{
			"2025-06-01": {Date: "2025-06-01", AvgNetProfit: 42_000_000},
		},
		Overall: models.OverallSummary{
			RunCount:     1,
			AvgNetProfit: 42_000_000,
			Categories: []models.CategorySummary{
				{Tier: "T5", Weather: "Electrical", RunCount: 1, AvgNetProfit: 42_000_000},
			},
		},
	})

	m := New(state)
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "42.0m ISK") {
		t.Error("View should contain the average profit")
	}

	// The category card sits below the fold at this height; scroll to it.
	m.viewport.GotoBottom()
	view = m.View()
	if !strings.Contains(view, "T5 Electrical") {
		t.Error("scrolled view should contain the category breakdown")
	}
}

func TestModel_Update(t *testing.T) {
	state := app.NewState()
	m := New(state)

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
}

func TestModel_SetSize(t *testing.T) {
	state := app.NewState()
	m := New(state)
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	state := app.NewState()
	m := New(state)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

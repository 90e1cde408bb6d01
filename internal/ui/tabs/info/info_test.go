package info

import (
	"strings"
	"testing"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/app"
	"github.com/veyl/abyssal-tracker-tui/internal/config"
)

func TestNew(t *testing.T) {
	state := app.NewState()
	cfg := &config.Config{}
	m := New(state, cfg)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Update(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	cfg := &config.Config{
		LogsPath:     "/logs/Chatlogs",
		DatabasePath: "/data/runs.db",
		PollInterval: 2 * time.Second,
		RegionID:     config.DefaultRegionID,
	}
	m := New(state, cfg)
	m.SetSize(80, 24)

	view := m.View()
	if view == "" {
		t.Error("View returned empty string")
	}
	if !strings.Contains(view, "/logs/Chatlogs") {
		t.Error("View should contain the logs path")
	}
	if !strings.Contains(view, "The Forge") {
		t.Error("View should name the default market region")
	}
}

func TestModel_SetSize(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/veyl/abyssal-tracker-tui/internal/analysis"
	"github.com/veyl/abyssal-tracker-tui/internal/config"
	"github.com/veyl/abyssal-tracker-tui/internal/logger"
	"github.com/veyl/abyssal-tracker-tui/internal/market"
	"github.com/veyl/abyssal-tracker-tui/internal/models"
	"github.com/veyl/abyssal-tracker-tui/internal/store"
	"github.com/veyl/abyssal-tracker-tui/internal/tracker"
)

type (
	// RunStartedEvent is emitted when the subject enters abyssal deadspace.
	RunStartedEvent struct {
		Run models.RunRecord // only Start is set
	}

	// RunCompletedEvent is emitted when a run finishes and is persisted.
	RunCompletedEvent struct {
		Run models.RunRecord
	}

	// FileSwitchedEvent is emitted when the tailer attaches to another log.
	FileSwitchedEvent struct {
		File      string
		Character string
	}

	// LocationChangedEvent is emitted on a normal-space system change.
	LocationChangedEvent struct {
		Location tracker.LocationInfo
	}

	// AnalysisCompleteEvent is emitted when an analysis pass finishes.
	AnalysisCompleteEvent struct {
		Result *models.AnalysisResult
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (RunStartedEvent) isServiceEvent()       {}
func (RunCompletedEvent) isServiceEvent()     {}
func (FileSwitchedEvent) isServiceEvent()     {}
func (LocationChangedEvent) isServiceEvent()  {}
func (AnalysisCompleteEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()            {}

// Manager orchestrates the tailer, store, and analyzer, and routes their
// events to TUI subscribers.
type Manager struct {
	mu          sync.RWMutex
	tailer      *tracker.Tailer
	database    *store.Store
	analyzer    *analysis.Analyzer
	history     *tracker.HistoryScanner
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	notify      bool
}

// NewManager creates a new service manager and starts the live tail.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
		notify:    true,
	}

	var err error
	m.database, err = store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cache := market.LoadIdentifierCache(cfg.TypeIDCachePath)
	m.analyzer = analysis.NewAnalyzer(
		m.database,
		market.NewIdentifierResolver(cache),
		market.NewPriceResolver(cfg.RegionID),
	)

	m.history = tracker.NewHistoryScanner(cfg.LogsPath, cfg.CharacterName, cfg.LogLanguage)
	m.tailer = tracker.NewTailer(cfg.LogsPath, cfg.CharacterName, cfg.LogLanguage, cfg.PollInterval)
	if err := m.tailer.Start(); err != nil {
		_ = m.database.Close()
		return nil, fmt.Errorf("failed to start log tailer: %w", err)
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from the tailer to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.tailer.Events():
			m.handleTailerEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleTailerEvent(event tracker.Event) {
	switch event.Type {
	case tracker.EventRunStarted:
		m.broadcast(RunStartedEvent{Run: models.RunRecord{Start: event.Start}})

	case tracker.EventRunCompleted:
		run := models.RunRecord{Start: event.Start, End: event.End}
		inserted, err := m.database.InsertRun(&run)
		if err != nil {
			logger.Error("failed to persist run", "error", err)
			m.broadcast(ErrorEvent{Service: "store", Error: err})
			return
		}
		if !inserted {
			logger.Debug("run already recorded", "start", run.Start)
			return
		}
		if m.notificationsEnabled() {
			title := "Abyssal run complete"
			body := fmt.Sprintf("Duration %s. Paste your loot to price it.", run.DurationString())
			_ = beeep.Notify(title, body, "")
		}
		m.broadcast(RunCompletedEvent{Run: run})

	case tracker.EventFileSwitched:
		m.broadcast(FileSwitchedEvent{
			File:      event.File,
			Character: event.Character,
		})

	case tracker.EventLocationChanged:
		m.broadcast(LocationChangedEvent{Location: event.Location})
	}
}

// RecordRunDetails attaches the category and loot transcript to a stored run
// after the user fills them in.
func (m *Manager) RecordRunDetails(id int64, category, itemText string) error {
	if err := m.database.UpdateRunDetails(id, category, itemText); err != nil {
		m.broadcast(ErrorEvent{Service: "store", Error: err})
		return err
	}
	return nil
}

// ImportHistory replays existing log files and persists every completed run
// not yet in the store. Returns the number of newly imported runs.
func (m *Manager) ImportHistory() (int, error) {
	byDate, err := m.history.Scan()
	if err != nil {
		return 0, fmt.Errorf("scanning history: %w", err)
	}

	imported := 0
	for _, runs := range byDate {
		for i := range runs {
			inserted, err := m.database.InsertRun(&runs[i])
			if err != nil {
				return imported, fmt.Errorf("persisting imported run: %w", err)
			}
			if inserted {
				imported++
			}
		}
	}

	logger.Info("history import finished", "imported", imported)
	return imported, nil
}

// Analyze runs one full analysis pass synchronously.
func (m *Manager) Analyze() (*models.AnalysisResult, error) {
	result, err := m.analyzer.Analyze()
	if err != nil {
		m.broadcast(ErrorEvent{Service: "analysis", Error: err})
		return nil, err
	}
	m.broadcast(AnalysisCompleteEvent{Result: result})
	return result, nil
}

// RefreshAnalysis runs an analysis pass in the background; the result arrives
// as an AnalysisCompleteEvent.
func (m *Manager) RefreshAnalysis() {
	go func() {
		if _, err := m.Analyze(); err != nil {
			logger.Error("analysis pass failed", "error", err)
		}
	}()
}

// SetNotifications toggles desktop notifications on run completion.
func (m *Manager) SetNotifications(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = enabled
}

// notificationsEnabled reads the toggle under the lock; the event router runs
// on its own goroutine while SetNotifications is called from the TUI.
func (m *Manager) notificationsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.notify
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Tailer returns the live tail service.
func (m *Manager) Tailer() *tracker.Tailer {
	return m.tailer
}

// Store returns the run store for direct access.
func (m *Manager) Store() *store.Store {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)
	m.tailer.Stop()

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	if m.database != nil {
		return m.database.Close()
	}
	return nil
}

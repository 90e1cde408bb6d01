package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
	"github.com/veyl/abyssal-tracker-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// RunsLoadedMsg contains the stored run list.
type RunsLoadedMsg struct {
	Runs  []models.RunRecord
	Error error
}

// AnalysisLoadedMsg contains the result of an analysis pass.
type AnalysisLoadedMsg struct {
	Result *models.AnalysisResult
	Error  error
}

// HistoryImportedMsg contains the result of a history import.
type HistoryImportedMsg struct {
	Imported int
	Error    error
}

// RunDetailsSavedMsg contains the result of saving run details.
type RunDetailsSavedMsg struct {
	ID    int64
	Error error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "runs", "analysis"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// DelayedMsg wraps a message to be sent after a delay.
type DelayedMsg struct {
	Delay time.Duration
	Msg   tea.Msg
}

// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
	"github.com/veyl/abyssal-tracker-tui/internal/tracker"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial  bool
	Runs     bool
	Analysis bool
	Import   bool
}

// TrackerStatus is the live tail status shown on the dashboard.
type TrackerStatus struct {
	File        string
	Character   string
	Location    tracker.LocationInfo
	InRun       bool
	RunStart    time.Time
	SessionRuns int
}

// State is the shared application state.
type State struct {
	mu sync.RWMutex

	Runs     []models.RunRecord
	Analysis *models.AnalysisResult
	Tracker  TrackerStatus

	SelectedRunIndex int

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		Runs:          make([]models.RunRecord, 0),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "runs":
		s.Loading.Runs = loading
	case "analysis":
		s.Loading.Analysis = loading
	case "import":
		s.Loading.Import = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Runs ||
		s.Loading.Analysis ||
		s.Loading.Import
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// SetRuns replaces the stored run list.
func (s *State) SetRuns(runs []models.RunRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Runs = runs
	s.LastUpdated = time.Now()

	if s.SelectedRunIndex >= len(runs) {
		s.SelectedRunIndex = max(0, len(runs)-1)
	}
}

// GetRuns returns a copy of the run list.
func (s *State) GetRuns() []models.RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]models.RunRecord, len(s.Runs))
	copy(runs, s.Runs)
	return runs
}

// GetRunCount returns the number of stored runs.
func (s *State) GetRunCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Runs)
}

// SetAnalysis stores the latest analysis result.
func (s *State) SetAnalysis(result *models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Analysis = result
	s.LastUpdated = time.Now()
}

// GetAnalysis returns the latest analysis result, or nil.
func (s *State) GetAnalysis() *models.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Analysis
}

// SetTrackerFile records the log file and character being tailed.
func (s *State) SetTrackerFile(file, character string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tracker.File = file
	s.Tracker.Character = character
	s.Tracker.InRun = false
}

// SetLocation updates the live location info.
func (s *State) SetLocation(loc tracker.LocationInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tracker.Location = loc
}

// SetInRun toggles the in-deadspace indicator.
func (s *State) SetInRun(inRun bool, start time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tracker.InRun = inRun
	s.Tracker.RunStart = start
	if !inRun && !start.IsZero() {
		s.Tracker.SessionRuns++
	}
}

// GetTracker returns a snapshot of the tracker status.
func (s *State) GetTracker() TrackerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Tracker
}

// GetSelectedRunIndex returns the currently selected run index.
func (s *State) GetSelectedRunIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SelectedRunIndex
}

// SetSelectedRunIndex updates the selected run index.
func (s *State) SetSelectedRunIndex(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SelectedRunIndex = idx
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Clear expired inline when reading
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}

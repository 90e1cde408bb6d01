// Package tracker derives run boundaries from classified location events and
// drives the live log tail.
package tracker

import (
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/logger"
	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

// runState is the boundary machine's position: outside abyssal deadspace, or
// inside with a recorded entry time.
type runState int

const (
	stateOutside runState = iota
	stateInside
)

// RunCompletedFunc receives the boundaries of a finished run. Both times are
// already converted to the reporting zone.
type RunCompletedFunc func(start, end time.Time)

// RunStartedFunc is notified when the subject enters abyssal deadspace.
type RunStartedFunc func(start time.Time)

// LocationInfo is the tracker's view of where the subject currently is.
type LocationInfo struct {
	CurrentSystem  string
	PreviousSystem string
	LastUpdated    time.Time
}

// RunBoundaryTracker consumes location events in temporal order and emits a
// completed run each time the subject leaves the anomalous location for a
// named one. Instances are single-consumer: one per tailed file, never shared.
type RunBoundaryTracker struct {
	state    runState
	start    time.Time // entry time, valid while state == stateInside
	runCount int

	currentSystem  string
	previousSystem string
	lastChange     time.Time

	onRunStarted   RunStartedFunc
	onRunCompleted RunCompletedFunc
}

// NewRunBoundaryTracker creates a tracker in the outside state.
func NewRunBoundaryTracker(onStarted RunStartedFunc, onCompleted RunCompletedFunc) *RunBoundaryTracker {
	return &RunBoundaryTracker{
		state:          stateOutside,
		onRunStarted:   onStarted,
		onRunCompleted: onCompleted,
	}
}

// Process advances the state machine by one event. Events must arrive in
// non-decreasing time order within a file; unparsable lines never reach here.
func (t *RunBoundaryTracker) Process(ev models.LocationEvent) {
	switch {
	case ev.IsAnomalous && t.state == stateOutside:
		t.state = stateInside
		t.start = ev.Timestamp
		logger.Info("abyssal deadspace entered",
			"start", t.start.In(models.ReportingZone).Format("2006-01-02 15:04:05"))
		if t.onRunStarted != nil {
			t.onRunStarted(t.start.In(models.ReportingZone))
		}

	case ev.IsAnomalous && t.state == stateInside:
		// Duplicate entry events while inside do not reset the start time;
		// the first entry wins.

	case !ev.IsAnomalous && t.state == stateInside:
		start := t.start.In(models.ReportingZone)
		end := ev.Timestamp.In(models.ReportingZone)
		t.state = stateOutside
		t.runCount++
		logger.Info("returned to normal space",
			"end", end.Format("2006-01-02 15:04:05"),
			"duration", end.Sub(start).Round(time.Second).String(),
			"total_runs", t.runCount)
		if t.onRunCompleted != nil {
			t.onRunCompleted(start, end)
		}
	}

	if !ev.IsAnomalous {
		if t.currentSystem != "" && t.currentSystem != ev.LocationName {
			t.previousSystem = t.currentSystem
		}
		t.currentSystem = ev.LocationName
	}
	t.lastChange = ev.Timestamp
}

// Reset abandons any in-progress run. Called when the tailed file switches;
// a run cannot span log files.
func (t *RunBoundaryTracker) Reset() {
	if t.state == stateInside {
		logger.Warn("abandoning in-progress run on log file switch",
			"start", t.start.In(models.ReportingZone).Format("2006-01-02 15:04:05"))
	}
	t.state = stateOutside
}

// Inside reports whether the subject is currently in abyssal deadspace.
func (t *RunBoundaryTracker) Inside() bool {
	return t.state == stateInside
}

// RunCount returns the number of runs completed by this tracker instance.
func (t *RunBoundaryTracker) RunCount() int {
	return t.runCount
}

// Location returns the last known normal-space position.
func (t *RunBoundaryTracker) Location() LocationInfo {
	return LocationInfo{
		CurrentSystem:  t.currentSystem,
		PreviousSystem: t.previousSystem,
		LastUpdated:    t.lastChange,
	}
}

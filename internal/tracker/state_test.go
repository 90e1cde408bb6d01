package tracker

import (
	"testing"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

func utc(hour, min int) time.Time {
	return time.Date(2025, 6, 1, hour, min, 0, 0, time.UTC)
}

func anomalous(at time.Time) models.LocationEvent {
	return models.LocationEvent{Timestamp: at, LocationName: "Unknown", IsAnomalous: true}
}

func normal(at time.Time, name string) models.LocationEvent {
	return models.LocationEvent{Timestamp: at, LocationName: name}
}

func TestRunBoundaryFirstEntryWins(t *testing.T) {
	type boundary struct{ start, end time.Time }
	var completed []boundary
	tracker := NewRunBoundaryTracker(nil, func(start, end time.Time) {
		completed = append(completed, boundary{start, end})
	})

	// Duplicate entry events while inside must not move the start time.
	tracker.Process(anomalous(utc(10, 0)))
	tracker.Process(anomalous(utc(10, 2)))
	tracker.Process(normal(utc(10, 30), "Jita"))

	if len(completed) != 1 {
		t.Fatalf("expected exactly one completed run, got %d", len(completed))
	}
	got := completed[0]
	if !got.start.Equal(utc(10, 0)) {
		t.Errorf("start = %v, want %v", got.start, utc(10, 0))
	}
	if !got.end.Equal(utc(10, 30)) {
		t.Errorf("end = %v, want %v", got.end, utc(10, 30))
	}
}

func TestRunBoundaryReportingZone(t *testing.T) {
	var start, end time.Time
	tracker := NewRunBoundaryTracker(nil, func(s, e time.Time) {
		start, end = s, e
	})

	tracker.Process(anomalous(utc(20, 0)))
	tracker.Process(normal(utc(20, 15), "Perimeter"))

	// Boundaries are reported in the fixed +09:00 zone, so a late-UTC run
	// lands on the next calendar day.
	if got := start.Format("2006-01-02 15:04:05"); got != "2025-06-02 05:00:00" {
		t.Errorf("reported start = %q, want 2025-06-02 05:00:00", got)
	}
	if got := end.Format("2006-01-02 15:04:05"); got != "2025-06-02 05:15:00" {
		t.Errorf("reported end = %q, want 2025-06-02 05:15:00", got)
	}
	if _, offset := start.Zone(); offset != 9*60*60 {
		t.Errorf("reported zone offset = %d, want +9h", offset)
	}
}

func TestRunBoundaryNormalMovementOnly(t *testing.T) {
	completions := 0
	tracker := NewRunBoundaryTracker(nil, func(_, _ time.Time) { completions++ })

	tracker.Process(normal(utc(9, 0), "Jita"))
	tracker.Process(normal(utc(9, 5), "Perimeter"))

	if completions != 0 {
		t.Fatalf("normal movement produced %d completions", completions)
	}
	loc := tracker.Location()
	if loc.CurrentSystem != "Perimeter" || loc.PreviousSystem != "Jita" {
		t.Errorf("location = %+v, want current Perimeter previous Jita", loc)
	}
	if !loc.LastUpdated.Equal(utc(9, 5)) {
		t.Errorf("last updated = %v, want %v", loc.LastUpdated, utc(9, 5))
	}
}

func TestRunBoundaryResetAbandonsRun(t *testing.T) {
	completions := 0
	tracker := NewRunBoundaryTracker(nil, func(_, _ time.Time) { completions++ })

	tracker.Process(anomalous(utc(11, 0)))
	if !tracker.Inside() {
		t.Fatal("expected to be inside after entry event")
	}
	tracker.Reset()
	tracker.Process(normal(utc(11, 20), "Jita"))

	if completions != 0 {
		t.Fatalf("abandoned run still completed %d times", completions)
	}
	if tracker.Inside() {
		t.Error("still inside after reset")
	}
}

func TestRunBoundaryCountsRuns(t *testing.T) {
	started := 0
	tracker := NewRunBoundaryTracker(
		func(time.Time) { started++ },
		func(_, _ time.Time) {},
	)

	for i := 0; i < 3; i++ {
		tracker.Process(anomalous(utc(10, i*10)))
		tracker.Process(normal(utc(10, i*10+5), "Jita"))
	}

	if tracker.RunCount() != 3 {
		t.Errorf("run count = %d, want 3", tracker.RunCount())
	}
	if started != 3 {
		t.Errorf("start notifications = %d, want 3", started)
	}
}
